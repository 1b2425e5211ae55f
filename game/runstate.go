package game

import "time"

// RunMode is the driver's run state.
type RunMode uint8

const (
	Running RunMode = iota
	Paused
)

func (m RunMode) String() string {
	if m == Paused {
		return "paused"
	}
	return "running"
}

// Transition reports a state change caused by an event.
type Transition uint8

const (
	NoChange Transition = iota
	EnteredPause
	Resumed
)

// RunState is the pause machine. Tick checks for inactivity, Activity
// records an interaction and resumes, Timeout pauses unconditionally.
type RunState struct {
	mode         RunMode
	lastActivity time.Time
	timeout      time.Duration
}

// NewRunState starts running with the last activity at now.
func NewRunState(now time.Time, timeout time.Duration) *RunState {
	return &RunState{lastActivity: now, timeout: timeout}
}

// Mode returns the current state.
func (r *RunState) Mode() RunMode {
	return r.mode
}

// Paused reports whether the machine is paused.
func (r *RunState) Paused() bool {
	return r.mode == Paused
}

// Tick pauses when more than the timeout has passed since the last
// activity. A timeout of zero or less never pauses.
func (r *RunState) Tick(now time.Time) Transition {
	if r.mode == Running && r.timeout > 0 && now.Sub(r.lastActivity) > r.timeout {
		return r.Timeout()
	}
	return NoChange
}

// Activity records an interaction at now and resumes if paused.
func (r *RunState) Activity(now time.Time) Transition {
	r.lastActivity = now
	if r.mode == Paused {
		r.mode = Running
		return Resumed
	}
	return NoChange
}

// Timeout pauses.
func (r *RunState) Timeout() Transition {
	if r.mode == Paused {
		return NoChange
	}
	r.mode = Paused
	return EnteredPause
}
