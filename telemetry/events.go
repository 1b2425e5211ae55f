// Package telemetry provides swarm health tracking, perf timing and CSV output.
package telemetry

import "log/slog"

// EventType identifies driver lifecycle events.
type EventType uint8

const (
	EventStart EventType = iota
	EventPause
	EventResume
	EventResize
	EventDestroy
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventResize:
		return "resize"
	case EventDestroy:
		return "destroy"
	}
	return "unknown"
}

// Event is one lifecycle transition of the driver.
type Event struct {
	Type      EventType `csv:"-"`
	Name      string    `csv:"event"`
	Tick      int64     `csv:"tick"`
	Particles int       `csv:"particles"`
	Width     float64   `csv:"width"`
	Height    float64   `csv:"height"`
	Class     string    `csv:"class"`
}

// NewEvent creates an event stamped with the driver state.
func NewEvent(t EventType, tick int64, particles int, width, height float64, class string) Event {
	return Event{
		Type:      t,
		Name:      t.String(),
		Tick:      tick,
		Particles: particles,
		Width:     width,
		Height:    height,
		Class:     class,
	}
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	slog.Info("swarm event",
		"event", e.Name,
		"tick", e.Tick,
		"particles", e.Particles,
		"width", e.Width,
		"height", e.Height,
		"class", e.Class,
	)
}
