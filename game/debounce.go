package game

import "time"

// Debouncer coalesces bursts of requests: Due fires once, delay after the
// latest Request. It is polled at tick boundaries rather than running a
// timer.
type Debouncer struct {
	delay   time.Duration
	due     time.Time
	pending bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Request (re)starts the quiet period at now.
func (d *Debouncer) Request(now time.Time) {
	d.due = now.Add(d.delay)
	d.pending = true
}

// Due reports whether a pending request's quiet period has elapsed, and
// clears it if so.
func (d *Debouncer) Due(now time.Time) bool {
	if !d.pending || now.Before(d.due) {
		return false
	}
	d.pending = false
	return true
}

// Pending reports whether a request is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Cancel drops any pending request.
func (d *Debouncer) Cancel() {
	d.pending = false
}
