// Package timer contains the domain logic for the countdown: the Countdown
// state machine, the Clock tick source and the AlertSink contract.
//
// Maintenance notes:
//   - Mutable fields (status, remaining, the entry text) are accessed by
//     multiple goroutines (the command loop and the tick goroutine), so they
//     are protected by a mutex. Read them through Snapshot() or the
//     accessors, never directly.
//   - All state transitions go through the command methods (Start, Pause,
//     Reset, EditMinutes, EditSeconds) plus the internal tick handler.
//     Prefer calling these through the centralized application command loop
//     to keep behavior deterministic.
//   - The active Clock subscription is an owned handle: it is acquired and
//     released only inside the transition code, and a tick whose handle no
//     longer matches the stored one is discarded. This is what keeps a late
//     tick after Pause or Reset from mutating anything.
package timer

import "sync"

// Status defines the possible states of the countdown.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusFinished
)

// Subscription is the handle returned by Clock.Subscribe. Cancel stops
// delivery; it must be safe to call more than once.
type Subscription interface {
	Cancel()
}

// Clock delivers one callback per elapsed second until the subscription is
// cancelled.
type Clock interface {
	Subscribe(onTick func()) Subscription
}

// AlertSink plays the completion cue. Play is called exactly once per
// Finished transition, StopAndRewind on every Reset.
type AlertSink interface {
	Play()
	StopAndRewind()
}

// DisplayRefresher is the minimal interface the countdown expects from the
// UI side. It is invoked after tick-driven transitions, which are the only
// transitions the UI does not initiate itself.
type DisplayRefresher interface {
	UpdateDisplay()
}

// Countdown is the single timer entity: configured duration, live remaining
// time, running status and the raw entry text, kept consistent through the
// command methods below.
type Countdown struct {
	clock Clock
	alert AlertSink

	// mutable state - protect with mu
	mu           sync.RWMutex
	status       Status
	remaining    int
	minutesField string
	secondsField string
	sub          Subscription
	gen          uint64

	// UI is set by the ui package and refreshed after every tick.
	UI DisplayRefresher
}

// NewCountdown creates a pristine countdown wired to the given collaborators.
func NewCountdown(clock Clock, alert AlertSink) *Countdown {
	return &Countdown{
		clock:        clock,
		alert:        alert,
		status:       StatusIdle,
		minutesField: "0",
		secondsField: "0",
	}
}

// configuredDuration derives the duration in seconds from the entry text.
// Must be called with mu held.
func (c *Countdown) configuredDuration() int {
	return clampParse(c.minutesField, MaxMinutes)*60 + clampParse(c.secondsField, MaxSeconds)
}

// subscribeLocked acquires a fresh Clock subscription. The generation
// counter stamps every callback from it, so ticks from a cancelled
// subscription can be told apart even if the scheduler delivers them late.
// Must be called with mu held and with no active subscription.
func (c *Countdown) subscribeLocked() {
	c.gen++
	gen := c.gen
	c.sub = c.clock.Subscribe(func() {
		c.tick(gen)
	})
}

// unsubscribeLocked releases the active subscription, if any, and
// invalidates its outstanding ticks. Must be called with mu held.
func (c *Countdown) unsubscribeLocked() {
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
	c.gen++
}

// Start begins the countdown from Idle, or resumes it from Paused. It is a
// no-op while Running, with a zero configured duration, or after Finished
// (Reset is the only exit from Finished).
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.status {
	case StatusRunning, StatusFinished:
		return
	case StatusPaused:
		if c.remaining <= 0 {
			return
		}
	default:
		d := c.configuredDuration()
		if d <= 0 {
			return
		}
		c.remaining = d
	}

	c.status = StatusRunning
	c.subscribeLocked()
}

// Pause suspends a running countdown, keeping the remaining time intact.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusRunning {
		return
	}
	c.unsubscribeLocked()
	c.status = StatusPaused
}

// Reset is the unconditional hard reset: it cancels any subscription,
// silences an in-progress alert and returns the countdown to its pristine
// state, from any status.
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.unsubscribeLocked()
	c.status = StatusIdle
	c.remaining = 0
	c.minutesField = "0"
	c.secondsField = "0"
	c.mu.Unlock()

	c.alert.StopAndRewind()
}

// EditMinutes records the raw minutes text. While not Running, the remaining
// time is rederived from both fields; while Running the countdown owns the
// numeric value and the text is only recorded.
func (c *Countdown) EditMinutes(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.minutesField = text
	if c.status != StatusRunning {
		c.remaining = c.configuredDuration()
	}
}

// EditSeconds mirrors EditMinutes for the seconds field.
func (c *Countdown) EditSeconds(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.secondsField = text
	if c.status != StatusRunning {
		c.remaining = c.configuredDuration()
	}
}

// tick processes one second of time passing. The gen stamp identifies the
// subscription that delivered the tick; a stale stamp means the tick lost a
// race against Pause or Reset and is ignored.
func (c *Countdown) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.status != StatusRunning {
		c.mu.Unlock()
		return
	}

	finished := false
	if c.remaining > 1 {
		c.remaining--
	} else {
		c.remaining = 0
		c.unsubscribeLocked()
		c.status = StatusFinished
		finished = true
	}
	ui := c.UI
	c.mu.Unlock()

	if finished {
		c.alert.Play()
	}
	if ui != nil {
		ui.UpdateDisplay()
	}
}

// Status returns the current status in a thread-safe manner.
func (c *Countdown) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Remaining returns the remaining seconds in a thread-safe manner.
func (c *Countdown) Remaining() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}

// DisplayText returns the countdown rendered as zero-padded "MM:SS".
func (c *Countdown) DisplayText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FormatTime(c.remaining)
}

// CanStart reports whether Start would begin or resume a countdown.
func (c *Countdown) CanStart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canStartLocked()
}

func (c *Countdown) canStartLocked() bool {
	return c.remaining > 0 ||
		clampParse(c.minutesField, MaxMinutes) > 0 ||
		clampParse(c.secondsField, MaxSeconds) > 0
}

// ShouldShowReset reports whether the Reset control is offered. The formula
// is deliberately redundant (true whenever CanStart is); it reduces to "any
// non-pristine state".
func (c *Countdown) ShouldShowReset() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.showResetLocked()
}

func (c *Countdown) showResetLocked() bool {
	return c.status == StatusRunning ||
		c.remaining > 0 ||
		c.status == StatusFinished ||
		c.canStartLocked()
}

// CountdownSnapshot is an atomic snapshot of the fields the UI needs to
// render a consistent view. Call Snapshot() to obtain a coherent set of
// values under the countdown lock.
type CountdownSnapshot struct {
	Status       Status
	Remaining    int
	MinutesField string
	SecondsField string
	CanStart     bool
	ShowReset    bool
}

// Snapshot returns a consistent snapshot of the countdown's state for UI use.
func (c *Countdown) Snapshot() CountdownSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CountdownSnapshot{
		Status:       c.status,
		Remaining:    c.remaining,
		MinutesField: c.minutesField,
		SecondsField: c.secondsField,
		CanStart:     c.canStartLocked(),
		ShowReset:    c.showResetLocked(),
	}
}
