package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{61, "01:01"},
		{90, "01:30"},
		{5999, "99:59"},
		{-7, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.sec), "FormatTime(%d)", tt.sec)
	}
}

func TestClampParse(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want int
	}{
		{"0", 99, 0},
		{"42", 99, 42},
		{"99", 99, 99},
		{"100", 99, 99},
		{"59", 59, 59},
		{"60", 59, 59},
		{"", 99, 0},
		{"abc", 99, 0},
		{"-3", 99, 0},
		{"1x", 99, 0},
		{" 5", 99, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampParse(tt.text, tt.max), "clampParse(%q, %d)", tt.text, tt.max)
	}
}
