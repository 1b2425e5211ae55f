package renderer

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ScreenSurface draws into a persistent raylib render texture so the
// translucent trail fill accumulates across frames. Present blits the
// texture to the window. Requires an initialized raylib window.
type ScreenSurface struct {
	target rl.RenderTexture2D
	loaded bool
	camera rl.Camera2D

	width, height float64
	ratio         float64
	blend         BlendMode
}

// NewScreenSurface creates a render-texture surface.
func NewScreenSurface(width, height, pixelRatio float64) (*ScreenSurface, error) {
	s := &ScreenSurface{}
	if err := s.Resize(width, height, pixelRatio); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates the render texture at device resolution.
func (s *ScreenSurface) Resize(width, height, pixelRatio float64) error {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	pw := int32(width * pixelRatio)
	ph := int32(height * pixelRatio)
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("invalid surface size %vx%v at ratio %v", width, height, pixelRatio)
	}

	target := rl.LoadRenderTexture(pw, ph)
	if target.ID == 0 {
		return fmt.Errorf("creating %dx%d render texture", pw, ph)
	}
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = target
	s.loaded = true
	s.width, s.height, s.ratio = width, height, pixelRatio
	s.camera = rl.Camera2D{Zoom: float32(pixelRatio)}

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
	return nil
}

// Size returns the logical size.
func (s *ScreenSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Begin starts drawing into the render texture.
func (s *ScreenSurface) Begin() {
	rl.BeginTextureMode(s.target)
	rl.BeginMode2D(s.camera)
}

// End finishes drawing into the render texture.
func (s *ScreenSurface) End() {
	s.SetBlendMode(BlendNormal)
	rl.EndMode2D()
	rl.EndTextureMode()
}

// SetBlendMode switches raylib's blend state.
func (s *ScreenSurface) SetBlendMode(mode BlendMode) {
	if mode == s.blend {
		return
	}
	if s.blend == BlendAdditive {
		rl.EndBlendMode()
	}
	if mode == BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	s.blend = mode
}

// Clear clears the render texture. Must be called between Begin and End.
func (s *ScreenSurface) Clear(c color.NRGBA) {
	rl.ClearBackground(toRL(c))
}

// FillRect fills an axis-aligned rectangle.
func (s *ScreenSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	rl.DrawRectangleRec(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}, toRL(c))
}

// FillCircle fills a solid circle.
func (s *ScreenSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	rl.DrawCircleV(rl.Vector2{X: float32(cx), Y: float32(cy)}, float32(r), toRL(c))
}

// FillRadial approximates the gradient with raylib's two-color circle
// gradient, sampling the stops at the center and at the clip radius.
func (s *ScreenSurface) FillRadial(cx, cy, r, extent float64, stops []GradientStop) {
	if extent <= 0 || r <= 0 {
		return
	}
	inner := gradientAt(stops, 0)
	outer := gradientAt(stops, r/extent)
	rl.DrawCircleGradient(int32(cx), int32(cy), float32(r), toRL(inner), toRL(outer))
}

// StrokeLine draws a thick segment.
func (s *ScreenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x0), Y: float32(y0)},
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		float32(width),
		toRL(c),
	)
}

// Present draws the render texture to the window at (x, y). Must be
// called between rl.BeginDrawing and rl.EndDrawing.
func (s *ScreenSurface) Present(x, y float32) {
	if !s.loaded {
		return
	}
	tex := s.target.Texture
	// Render textures are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: -float32(tex.Height)}
	dst := rl.Rectangle{X: x, Y: y, Width: float32(s.width), Height: float32(s.height)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the render texture.
func (s *ScreenSurface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func toRL(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
