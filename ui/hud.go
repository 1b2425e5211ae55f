package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chaos-swarm/telemetry"
)

// HUDData holds the values shown by the HUD.
type HUDData struct {
	Title     string
	Variant   string
	Class     string
	Particles int
	Tick      int64
	FPS       int32
	Paused    bool
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding

	r.DrawPanel(x-4, y-4, 200, 5*r.Theme.LineHeight+8)
	rl.DrawText(data.Title, x, y, 14, r.Theme.TitleColor)
	y += r.Theme.LineHeight

	y = r.DrawLabelValue(x, y, "Variant", data.Variant)
	y = r.DrawLabelValue(x, y, "Profile", data.Class)
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))

	status := fmt.Sprintf("tick %d  %d fps", data.Tick, data.FPS)
	if data.Paused {
		status = "paused"
	}
	r.DrawLabelValue(x, y, "Status", status)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	th := p.renderer.Theme
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, th.TitleColor)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range []string{
		telemetry.PhaseReflow, telemetry.PhaseFade, telemetry.PhaseStep,
		telemetry.PhaseRender, telemetry.PhaseTelemetry,
	} {
		pct := stats.PhasePct[phase]
		color := th.LabelColor
		if pct > 50 {
			color = th.HotColor
		} else if pct > 25 {
			color = th.WarmColor
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase,
			stats.PhaseAvg[phase].Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
