package ui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PauseMessage is the text shown while the swarm is paused.
const PauseMessage = "Simulation paused - interact to resume"

// ErrIndicatorRemoved is returned when a removed indicator is shown or hidden.
var ErrIndicatorRemoved = errors.New("indicator removed")

// Indicator is the visible pause notice.
type Indicator interface {
	Show() error
	Hide() error
	// Remove detaches the indicator for good. It is safe to call twice.
	Remove() error
}

// PauseIndicator draws the pause notice centered over the swarm surface
// with a short fade in and out.
type PauseIndicator struct {
	theme   IndicatorTheme
	visible bool
	removed bool
	opacity float32
}

// NewPauseIndicator creates a hidden indicator.
func NewPauseIndicator() *PauseIndicator {
	return &PauseIndicator{theme: DefaultIndicatorTheme()}
}

func (p *PauseIndicator) Show() error {
	if p.removed {
		return ErrIndicatorRemoved
	}
	p.visible = true
	return nil
}

func (p *PauseIndicator) Hide() error {
	if p.removed {
		return ErrIndicatorRemoved
	}
	p.visible = false
	return nil
}

func (p *PauseIndicator) Remove() error {
	p.removed = true
	p.visible = false
	p.opacity = 0
	return nil
}

// Visible reports whether the indicator is shown or fading in.
func (p *PauseIndicator) Visible() bool {
	return p.visible
}

// Update advances the fade by dt seconds.
func (p *PauseIndicator) Update(dt float32) {
	step := dt / p.theme.FadeSec
	if p.visible {
		p.opacity = clamp01(p.opacity + step)
	} else {
		p.opacity = clamp01(p.opacity - step)
	}
}

// Draw renders the indicator horizontally centered in screenWidth, just
// below surfaceTop.
func (p *PauseIndicator) Draw(screenWidth, surfaceTop int32) {
	if p.removed || p.opacity <= 0 {
		return
	}
	th := p.theme

	textW := rl.MeasureText(PauseMessage, th.FontSize)
	w := max(textW+2*th.PadX, th.MinWidth)
	h := th.FontSize + 2*th.PadY
	x := (screenWidth - w) / 2
	y := surfaceTop + th.TopOffset

	rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
	rl.DrawRectangleRec(rect, fade(th.Background, p.opacity))
	rl.DrawRectangleLinesEx(rect, 2, fade(th.Border, p.opacity))
	rl.DrawText(PauseMessage, x+(w-textW)/2, y+th.PadY, th.FontSize, fade(th.Text, p.opacity))
}

// MemoryIndicator records indicator state without drawing. Headless runs
// and tests use it; Err, when set, is returned from Show and Hide.
type MemoryIndicator struct {
	Visible bool
	Removed bool
	Shows   int
	Hides   int
	Err     error
}

func (m *MemoryIndicator) Show() error {
	if m.Removed {
		return ErrIndicatorRemoved
	}
	m.Shows++
	if m.Err != nil {
		return m.Err
	}
	m.Visible = true
	return nil
}

func (m *MemoryIndicator) Hide() error {
	if m.Removed {
		return ErrIndicatorRemoved
	}
	m.Hides++
	if m.Err != nil {
		return m.Err
	}
	m.Visible = false
	return nil
}

func (m *MemoryIndicator) Remove() error {
	m.Removed = true
	m.Visible = false
	return nil
}
