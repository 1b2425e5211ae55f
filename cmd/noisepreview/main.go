// Noise field preview tool - interactive view of the forcing field that
// steers the swarm.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// NoiseParams holds the sampled field parameters.
type NoiseParams struct {
	Kind        string  `yaml:"noise"`
	Seed        int64   `yaml:"noise_seed"`
	NoiseScale  float32 `yaml:"noise_scale"`
	TimeScale   float32 `yaml:"time_scale"`
	NoiseGain   float32 `yaml:"noise_gain"`
	FieldPixels float32 `yaml:"-"` // Logical pixels covered by the preview
}

func defaultParams(cfg *config.Config) NoiseParams {
	v, _ := cfg.Variant(cfg.Swarm.Variant)
	return NoiseParams{
		Kind:        cfg.Swarm.Noise,
		Seed:        cfg.Swarm.NoiseSeed,
		NoiseScale:  float32(cfg.Swarm.NoiseScale),
		TimeScale:   float32(v.Full.TimeScale),
		NoiseGain:   float32(v.Full.NoiseGain),
		FieldPixels: 1280,
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(cfg)
	field := systems.NewNoiseField(params.Kind, params.Seed)

	grid := make([][2]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	// Milliseconds of simulated wall time
	var nowMs float64
	animating := false
	showArrows := true
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			nowMs += float64(rl.GetFrameTime()) * 1000
			needsRegen = true
		}

		if needsRegen {
			sampleField(grid, field, params, cfg.Swarm.TimeDivisor, nowMs)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		if showArrows {
			drawArrows(grid)
		}

		var minVal, maxVal float32 = math.MaxFloat32, -math.MaxFloat32
		var sum float32
		for _, v := range grid {
			m := float32(math.Hypot(float64(v[0]), float64(v[1])))
			sum += m
			minVal = min(minVal, v[0], v[1])
			maxVal = max(maxVal, v[0], v[1])
		}
		avg := sum / float32(len(grid))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg |f|: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.0f ms  Field: %s", nowMs, params.Kind), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, changed := slider(&panelY, panelX, "Noise scale (pixels to noise space)", "%.4f", params.NoiseScale, 0.001, 0.02); changed {
			params.NoiseScale = v
			needsRegen = true
		}
		if v, changed := slider(&panelY, panelX, "Time scale (flow speed)", "%.2f", params.TimeScale, 0.5, 10); changed {
			params.TimeScale = v
			needsRegen = true
		}
		if v, changed := slider(&panelY, panelX, "Noise gain (forcing weight)", "%.3f", params.NoiseGain, 0, 0.5); changed {
			params.NoiseGain = v
			needsRegen = true
		}
		if v, changed := slider(&panelY, panelX, "Field width (logical pixels)", "%.0f", params.FieldPixels, 200, 2560); changed {
			params.FieldPixels = v
			needsRegen = true
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			nowMs = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Kind == "opensimplex", "Simplex", "OpenSimplex")) {
			if params.Kind == "opensimplex" {
				params.Kind = "simplex"
			} else {
				params.Kind = "opensimplex"
			}
			field = systems.NewNoiseField(params.Kind, params.Seed)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			field = systems.NewNoiseField(params.Kind, params.Seed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showArrows, "Hide Arrows", "Show Arrows")) {
			showArrows = !showArrows
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			field = systems.NewNoiseField(params.Kind, params.Seed)
			nowMs = 0
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		out := yamlSnippet(params)
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and advances the layout cursor.
func slider(y *float32, x float32, label, format string, value, lo, hi float32) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, next != value
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func yamlSnippet(p NoiseParams) string {
	data, err := yaml.Marshal(map[string]NoiseParams{"swarm": p})
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return string(data)
}

// sampleField evaluates the two forcing components the swarm reads at
// each grid cell: x samples at -t, y at +t.
func sampleField(grid [][2]float32, field systems.NoiseField, p NoiseParams, timeDivisor, nowMs float64) {
	t := nowMs * float64(p.TimeScale) / timeDivisor
	cell := float64(p.FieldPixels) / gridSize
	scale := float64(p.NoiseScale)
	gain := float64(p.NoiseGain)

	for y := 0; y < gridSize; y++ {
		py := (float64(y) + 0.5) * cell * scale
		for x := 0; x < gridSize; x++ {
			px := (float64(x) + 0.5) * cell * scale
			grid[y*gridSize+x] = [2]float32{
				float32(field.Sample(px, py, -t) * gain),
				float32(field.Sample(px, py, t) * gain),
			}
		}
	}
}

// updateTexture colors each cell by force direction (hue) and magnitude
// (lightness).
func updateTexture(texture rl.Texture2D, grid [][2]float32) {
	var peak float64
	for _, v := range grid {
		peak = math.Max(peak, math.Hypot(float64(v[0]), float64(v[1])))
	}
	if peak == 0 {
		peak = 1
	}

	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		fx, fy := float64(v[0]), float64(v[1])
		hue := math.Mod(math.Atan2(fy, fx)*180/math.Pi+360, 360)
		mag := math.Hypot(fx, fy) / peak
		r, g, b := colorful.Hcl(hue, 0.5, 0.15+0.65*mag).Clamped().RGB255()
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

// drawArrows overlays a sparse grid of force vectors on the preview.
func drawArrows(grid [][2]float32) {
	const step = 16
	const px = float32(previewSize) / gridSize

	var peak float64
	for _, v := range grid {
		peak = math.Max(peak, math.Hypot(float64(v[0]), float64(v[1])))
	}
	if peak == 0 {
		return
	}

	for y := step / 2; y < gridSize; y += step {
		for x := step / 2; x < gridSize; x += step {
			v := grid[y*gridSize+x]
			sx := 10 + float32(x)*px
			sy := 10 + float32(y)*px
			k := float32(step) * px * 0.45 / float32(peak)
			rl.DrawLineEx(
				rl.Vector2{X: sx, Y: sy},
				rl.Vector2{X: sx + v[0]*k, Y: sy + v[1]*k},
				1.5,
				rl.Fade(rl.White, 0.8),
			)
		}
	}
}
