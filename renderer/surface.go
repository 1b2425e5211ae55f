// Package renderer provides drawing surfaces for the swarm and gallery.
package renderer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode selects how drawn pixels combine with the surface.
type BlendMode uint8

const (
	// BlendNormal paints source over destination.
	BlendNormal BlendMode = iota
	// BlendAdditive sums source into destination so overlaps brighten.
	BlendAdditive
)

// GradientStop is one color stop of a radial gradient. Offset runs from 0
// at the center to 1 at the gradient extent.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is a 2-D drawing target in logical pixels. Implementations scale
// to device pixels using the ratio passed to Resize.
type Surface interface {
	// Resize reallocates the surface; existing content is discarded.
	Resize(width, height, pixelRatio float64) error
	// Size returns the logical size.
	Size() (width, height float64)

	// Begin and End bracket the drawing calls of one frame.
	Begin()
	End()

	// Clear replaces every pixel with c, ignoring the blend mode.
	Clear(c color.NRGBA)
	SetBlendMode(mode BlendMode)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// FillRadial fills a circle of radius r with a gradient whose stops
	// span out to extent.
	FillRadial(cx, cy, r, extent float64, stops []GradientStop)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

// HSLA builds a color from hue in degrees, saturation and lightness in
// [0,1] and alpha in [0,1].
func HSLA(h, s, l, a float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alphaByte(a)}
}

func alphaByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}

// gradientAt interpolates the stops at offset t.
func gradientAt(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return color.NRGBA{
				R: lerpByte(a.Color.R, b.Color.R, f),
				G: lerpByte(a.Color.G, b.Color.G, f),
				B: lerpByte(a.Color.B, b.Color.B, f),
				A: lerpByte(a.Color.A, b.Color.A, f),
			}
		}
	}
	return stops[len(stops)-1].Color
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
