package game

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/pthm-cable/chaos-swarm/profile"
)

// FrameID identifies a scheduled frame callback. Zero is never issued.
type FrameID uint64

// Host is the environment a Driver runs in: a clock, a
// before-next-refresh scheduler, viewport and input listeners, and the
// device signals.
type Host interface {
	Now() time.Time
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
	// OnResize and OnActivity register a listener and return the
	// function that removes it.
	OnResize(fn func()) (remove func())
	OnActivity(fn func()) (remove func())
	Signals() profile.Signals
}

type pendingFrame struct {
	id FrameID
	fn func()
}

// frameQueue holds requested frame callbacks.
type frameQueue struct {
	next    FrameID
	pending []pendingFrame
}

func (q *frameQueue) request(fn func()) FrameID {
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, fn: fn})
	return q.next
}

func (q *frameQueue) cancel(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// run invokes the callbacks pending at call time. Callbacks requested while
// running wait for the next run, as they would for the next refresh.
func (q *frameQueue) run() int {
	batch := q.pending
	q.pending = nil
	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// listenerSet is a set of callbacks keyed by registration order.
type listenerSet struct {
	next int
	fns  map[int]func()
}

func (l *listenerSet) add(fn func()) func() {
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listenerSet) emit() {
	for i := 0; i < l.next; i++ {
		if fn, ok := l.fns[i]; ok {
			fn()
		}
	}
}

// ManualHost is a Host driven explicitly by its caller: the clock only
// moves on Advance and frames only run on RunFrame. Headless runs and
// tests use it.
type ManualHost struct {
	clock    *clock.Mock
	frames   frameQueue
	resize   listenerSet
	activity listenerSet
	signals  profile.Signals
}

// NewManualHost creates a host whose clock starts at start.
func NewManualHost(start time.Time, sig profile.Signals) *ManualHost {
	c := clock.NewMock()
	c.Set(start)
	return &ManualHost{clock: c, signals: sig}
}

func (h *ManualHost) Now() time.Time {
	return h.clock.Now()
}

// Advance moves the clock forward.
func (h *ManualHost) Advance(d time.Duration) {
	h.clock.Add(d)
}

// Clock returns the mock clock behind Now.
func (h *ManualHost) Clock() *clock.Mock {
	return h.clock
}

func (h *ManualHost) RequestFrame(fn func()) FrameID {
	return h.frames.request(fn)
}

func (h *ManualHost) CancelFrame(id FrameID) {
	h.frames.cancel(id)
}

// RunFrame runs the pending frame callbacks and reports how many ran.
func (h *ManualHost) RunFrame() int {
	return h.frames.run()
}

// PendingFrames returns the number of scheduled callbacks.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames.pending)
}

func (h *ManualHost) OnResize(fn func()) func() {
	return h.resize.add(fn)
}

func (h *ManualHost) OnActivity(fn func()) func() {
	return h.activity.add(fn)
}

// Listeners returns the number of registered resize and activity listeners.
func (h *ManualHost) Listeners() int {
	return len(h.resize.fns) + len(h.activity.fns)
}

func (h *ManualHost) Signals() profile.Signals {
	return h.signals
}

// SetViewport changes the viewport and notifies resize listeners.
func (h *ManualHost) SetViewport(w, hgt float64) {
	h.signals.ViewportW = w
	h.signals.ViewportH = hgt
	h.resize.emit()
}

// EmitActivity notifies activity listeners of a user interaction.
func (h *ManualHost) EmitActivity() {
	h.activity.emit()
}
