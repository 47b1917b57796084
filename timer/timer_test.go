package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out subscriptions whose ticks are delivered manually by
// the test, and records every subscribe/cancel so the single-subscription
// invariant can be checked.
type fakeClock struct {
	subs []*fakeSubscription
}

type fakeSubscription struct {
	onTick    func()
	cancelled bool
}

func (s *fakeSubscription) Cancel() { s.cancelled = true }

func (c *fakeClock) Subscribe(onTick func()) Subscription {
	s := &fakeSubscription{onTick: onTick}
	c.subs = append(c.subs, s)
	return s
}

// tickActive delivers one tick through the most recent live subscription.
func (c *fakeClock) tickActive(t *testing.T) {
	t.Helper()
	s := c.active()
	require.NotNil(t, s, "no active subscription to tick")
	s.onTick()
}

func (c *fakeClock) active() *fakeSubscription {
	for i := len(c.subs) - 1; i >= 0; i-- {
		if !c.subs[i].cancelled {
			return c.subs[i]
		}
	}
	return nil
}

func (c *fakeClock) activeCount() int {
	n := 0
	for _, s := range c.subs {
		if !s.cancelled {
			n++
		}
	}
	return n
}

// spyAlert counts the AlertSink calls.
type spyAlert struct {
	plays int
	stops int
}

func (a *spyAlert) Play()          { a.plays++ }
func (a *spyAlert) StopAndRewind() { a.stops++ }

func newTestCountdown() (*Countdown, *fakeClock, *spyAlert) {
	clock := &fakeClock{}
	alert := &spyAlert{}
	return NewCountdown(clock, alert), clock, alert
}

func TestNewCountdown_Pristine(t *testing.T) {
	c, clock, alert := newTestCountdown()

	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, "00:00", c.DisplayText())
	assert.False(t, c.CanStart())
	assert.False(t, c.ShouldShowReset())
	assert.Equal(t, 0, clock.activeCount())
	assert.Equal(t, 0, alert.plays)
}

func TestEditFields_DeriveDisplayAndCanStart(t *testing.T) {
	tests := []struct {
		name        string
		minutes     string
		seconds     string
		wantDisplay string
		wantStart   bool
	}{
		{"zero", "0", "0", "00:00", false},
		{"seconds only", "0", "5", "00:05", true},
		{"minutes only", "2", "0", "02:00", true},
		{"both", "1", "30", "01:30", true},
		{"max values", "99", "59", "99:59", true},
		{"minutes clamp above 99", "150", "0", "99:00", true},
		{"seconds clamp above 59", "0", "99", "00:59", true},
		{"empty fields", "", "", "00:00", false},
		{"garbage minutes", "abc", "10", "00:10", true},
		{"garbage seconds", "3", "x", "03:00", true},
		{"negative counts as zero", "-4", "-1", "00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCountdown()
			c.EditMinutes(tt.minutes)
			c.EditSeconds(tt.seconds)

			assert.Equal(t, tt.wantDisplay, c.DisplayText())
			assert.Equal(t, tt.wantStart, c.CanStart())
			assert.Equal(t, StatusIdle, c.Status())
		})
	}
}

func TestEdit_PreservesRawText(t *testing.T) {
	c, _, _ := newTestCountdown()

	// Typing "0" then backspacing to empty must not snap back to "0".
	c.EditMinutes("0")
	c.EditMinutes("")
	s := c.Snapshot()
	assert.Equal(t, "", s.MinutesField)
	assert.Equal(t, 0, s.Remaining)
}

func TestStart_ZeroDuration_NoOp(t *testing.T) {
	c, clock, _ := newTestCountdown()

	c.Start()

	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 0, clock.activeCount())
}

func TestStart_BeginsCountdownAndSubscribes(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditMinutes("1")
	c.EditSeconds("30")

	c.Start()

	assert.Equal(t, StatusRunning, c.Status())
	assert.Equal(t, 90, c.Remaining())
	assert.Equal(t, 1, clock.activeCount())
}

func TestStart_WhileRunning_Idempotent(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("10")
	c.Start()
	clock.tickActive(t)

	c.Start()

	assert.Equal(t, StatusRunning, c.Status())
	assert.Equal(t, 9, c.Remaining())
	assert.Equal(t, 1, clock.activeCount(), "restart must not stack subscriptions")
}

func TestRun_ToFinished(t *testing.T) {
	c, clock, alert := newTestCountdown()
	c.EditSeconds("5")
	c.Start()

	for i := 0; i < 5; i++ {
		clock.tickActive(t)
	}

	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, "00:00", c.DisplayText())
	assert.Equal(t, 1, alert.plays, "alert must fire exactly once")
	assert.Equal(t, 0, clock.activeCount(), "finished countdown must not keep ticking")
	assert.True(t, c.ShouldShowReset())
}

func TestStart_FromFinished_NoOp(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("1")
	c.Start()
	clock.tickActive(t)
	require.Equal(t, StatusFinished, c.Status())

	c.Start()

	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 0, clock.activeCount())
}

func TestEditInFinished_RecomputesButStaysFinished(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("1")
	c.Start()
	clock.tickActive(t)
	require.Equal(t, StatusFinished, c.Status())

	c.EditSeconds("5")

	s := c.Snapshot()
	assert.Equal(t, StatusFinished, s.Status, "editing never leaves Finished")
	assert.Equal(t, 5, s.Remaining, "remaining rederives from the fields whenever not Running")
	assert.Equal(t, "5", s.SecondsField)

	// Reset is still the only exit from Finished.
	c.Start()
	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 0, clock.activeCount())
}

func TestPauseResume_PreservesRemaining(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditMinutes("1")
	c.EditSeconds("30")
	c.Start()

	clock.tickActive(t)
	clock.tickActive(t)
	clock.tickActive(t)
	c.Pause()

	assert.Equal(t, StatusPaused, c.Status())
	assert.Equal(t, 87, c.Remaining())
	assert.Equal(t, 0, clock.activeCount(), "pause must cancel the subscription")

	c.Start()
	clock.tickActive(t)
	clock.tickActive(t)

	assert.Equal(t, StatusRunning, c.Status())
	assert.Equal(t, 85, c.Remaining(), "no ticks lost or duplicated across pause")
}

func TestPause_WhenNotRunning_NoOp(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("5")

	c.Pause()
	assert.Equal(t, StatusIdle, c.Status())

	c.Start()
	c.Pause()
	c.Pause()
	assert.Equal(t, StatusPaused, c.Status())
	assert.Equal(t, 5, c.Remaining())
	assert.Equal(t, 0, clock.activeCount())
}

func TestReset_FromAnyState(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, c *Countdown, clock *fakeClock)
	}{
		{
			name:    "idle with typed duration",
			prepare: func(t *testing.T, c *Countdown, clock *fakeClock) { c.EditMinutes("5") },
		},
		{
			name: "running",
			prepare: func(t *testing.T, c *Countdown, clock *fakeClock) {
				c.EditSeconds("30")
				c.Start()
				clock.tickActive(t)
			},
		},
		{
			name: "paused",
			prepare: func(t *testing.T, c *Countdown, clock *fakeClock) {
				c.EditSeconds("30")
				c.Start()
				c.Pause()
			},
		},
		{
			name: "finished",
			prepare: func(t *testing.T, c *Countdown, clock *fakeClock) {
				c.EditSeconds("1")
				c.Start()
				clock.tickActive(t)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock, alert := newTestCountdown()
			tt.prepare(t, c, clock)

			c.Reset()

			s := c.Snapshot()
			assert.Equal(t, StatusIdle, s.Status)
			assert.Equal(t, 0, s.Remaining)
			assert.Equal(t, "0", s.MinutesField)
			assert.Equal(t, "0", s.SecondsField)
			assert.False(t, s.CanStart)
			assert.False(t, s.ShowReset)
			assert.Equal(t, 0, clock.activeCount())
			assert.Equal(t, 1, alert.stops, "exactly one StopAndRewind per reset")
		})
	}
}

func TestStaleTick_AfterReset_Ignored(t *testing.T) {
	c, clock, alert := newTestCountdown()
	c.EditSeconds("3")
	c.Start()
	stale := clock.active()
	require.NotNil(t, stale)

	c.Reset()
	stale.onTick()

	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 0, alert.plays)
}

func TestStaleTick_AfterPause_Ignored(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("10")
	c.Start()
	stale := clock.active()
	require.NotNil(t, stale)

	clock.tickActive(t)
	c.Pause()
	stale.onTick()

	assert.Equal(t, StatusPaused, c.Status())
	assert.Equal(t, 9, c.Remaining())
}

func TestStaleTick_AfterResume_OldSubscriptionIgnored(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("10")
	c.Start()
	stale := clock.active()
	c.Pause()
	c.Start()

	// A late tick from the pre-pause subscription must not double-decrement.
	stale.onTick()
	assert.Equal(t, 10, c.Remaining())

	clock.tickActive(t)
	assert.Equal(t, 9, c.Remaining())
}

func TestEditWhileRunning_RecordsTextOnly(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("30")
	c.Start()
	clock.tickActive(t)

	c.EditMinutes("59")
	c.EditSeconds("59")

	s := c.Snapshot()
	assert.Equal(t, 29, s.Remaining, "remaining changes only via ticks while running")
	assert.Equal(t, "59", s.MinutesField)
	assert.Equal(t, "59", s.SecondsField)

	clock.tickActive(t)
	assert.Equal(t, 28, c.Remaining())
}

func TestShouldShowReset_TracksNonPristineState(t *testing.T) {
	c, clock, _ := newTestCountdown()
	assert.False(t, c.ShouldShowReset())

	c.EditSeconds("7")
	assert.True(t, c.ShouldShowReset(), "visible as soon as a duration is typed")

	c.Start()
	assert.True(t, c.ShouldShowReset())

	for i := 0; i < 7; i++ {
		clock.tickActive(t)
	}
	assert.Equal(t, StatusFinished, c.Status())
	assert.True(t, c.ShouldShowReset())

	c.Reset()
	assert.False(t, c.ShouldShowReset())
}

func TestResume_AfterEditWhilePaused_UsesEditedDuration(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditSeconds("30")
	c.Start()
	clock.tickActive(t)
	c.Pause()
	require.Equal(t, 29, c.Remaining())

	// Editing while paused rederives remaining from the fields.
	c.EditMinutes("2")
	c.EditSeconds("0")
	assert.Equal(t, 120, c.Remaining())

	c.Start()
	clock.tickActive(t)
	assert.Equal(t, 119, c.Remaining())
}

func TestSnapshot_Coherent(t *testing.T) {
	c, clock, _ := newTestCountdown()
	c.EditMinutes("1")
	c.EditSeconds("5")
	c.Start()
	clock.tickActive(t)

	s := c.Snapshot()
	assert.Equal(t, StatusRunning, s.Status)
	assert.Equal(t, 64, s.Remaining)
	assert.Equal(t, "1", s.MinutesField)
	assert.Equal(t, "5", s.SecondsField)
	assert.True(t, s.CanStart)
	assert.True(t, s.ShowReset)
}
