package game

import (
	"time"

	"github.com/benbjohnson/clock"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/profile"
)

// RaylibHost adapts a raylib window to Host. The main loop calls Poll
// once per rendered frame, then RunFrames.
type RaylibHost struct {
	clock    clock.Clock
	device   config.DeviceConfig
	frames   frameQueue
	resize   listenerSet
	activity listenerSet
}

// NewRaylibHost creates a host for the open raylib window.
func NewRaylibHost(device config.DeviceConfig) *RaylibHost {
	return &RaylibHost{clock: clock.New(), device: device}
}

func (h *RaylibHost) Now() time.Time {
	return h.clock.Now()
}

func (h *RaylibHost) RequestFrame(fn func()) FrameID {
	return h.frames.request(fn)
}

func (h *RaylibHost) CancelFrame(id FrameID) {
	h.frames.cancel(id)
}

func (h *RaylibHost) OnResize(fn func()) func() {
	return h.resize.add(fn)
}

func (h *RaylibHost) OnActivity(fn func()) func() {
	return h.activity.add(fn)
}

// Signals reads the window size and DPI scale, applying device overrides.
func (h *RaylibHost) Signals() profile.Signals {
	scale := rl.GetWindowScaleDPI()
	dpr := float64(scale.X)
	if dpr <= 0 {
		dpr = 1
	}
	return profile.Probe(h.device, float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), dpr)
}

// Poll turns this frame's window and input state into listener calls.
func (h *RaylibHost) Poll() {
	if rl.IsWindowResized() {
		h.resize.emit()
	}
	if inputActive() {
		h.activity.emit()
	}
}

// RunFrames runs the frame callbacks requested before this call.
func (h *RaylibHost) RunFrames() int {
	return h.frames.run()
}

// inputActive reports pointer presses or moves, key presses, scrolling and
// touches.
func inputActive() bool {
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		return true
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) ||
		rl.IsMouseButtonPressed(rl.MouseButtonRight) ||
		rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		return true
	}
	if rl.GetKeyPressed() != 0 {
		return true
	}
	if rl.GetMouseWheelMove() != 0 {
		return true
	}
	return rl.GetTouchPointCount() > 0
}
