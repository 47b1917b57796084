package timer

import (
	"fmt"
	"strconv"
)

// FormatTime converts a number of seconds into a mm:ss string format.
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// clampParse normalizes raw entry text at the moment of numeric use:
// unparsable or empty text counts as 0, negatives clamp to 0 and anything
// above max clamps to max. It never fails; the entry widgets may hold
// transiently invalid text and that is fine.
func clampParse(text string, max int) int {
	v, err := strconv.Atoi(text)
	if err != nil || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
