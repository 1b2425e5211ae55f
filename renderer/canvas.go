package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Canvas is a software Surface backed by an RGBA image. It is used for
// headless runs, the terminal preview and tests.
type Canvas struct {
	img    *image.RGBA
	width  float64
	height float64
	ratio  float64
	blend  BlendMode
}

// NewCanvas creates a canvas of the given logical size.
func NewCanvas(width, height, pixelRatio float64) (*Canvas, error) {
	c := &Canvas{}
	if err := c.Resize(width, height, pixelRatio); err != nil {
		return nil, err
	}
	return c, nil
}

// Resize reallocates the backing image and clears it.
func (c *Canvas) Resize(width, height, pixelRatio float64) error {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	pw := int(math.Round(width * pixelRatio))
	ph := int(math.Round(height * pixelRatio))
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("invalid canvas size %vx%v at ratio %v", width, height, pixelRatio)
	}
	c.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	c.width = width
	c.height = height
	c.ratio = pixelRatio
	return nil
}

// Size returns the logical size.
func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

// PixelRatio returns the device pixel ratio.
func (c *Canvas) PixelRatio() float64 {
	return c.ratio
}

// Image returns the backing image in device pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the device pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Begin is a no-op for the software canvas.
func (c *Canvas) Begin() {}

// End restores normal blending.
func (c *Canvas) End() {
	c.blend = BlendNormal
}

// SetBlendMode selects the compositing mode for subsequent draws.
func (c *Canvas) SetBlendMode(mode BlendMode) {
	c.blend = mode
}

// Clear overwrites the whole image with col.
func (c *Canvas) Clear(col color.NRGBA) {
	pre := color.RGBAModel.Convert(col).(color.RGBA)
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = pre.R, pre.G, pre.B, pre.A
	}
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, y0, x1, y1 := c.pixelBox(x, y, x+w, y+h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blendPixel(px, py, col)
		}
	}
}

// FillCircle fills a solid circle.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	c.eachInCircle(cx, cy, r, func(px, py int, _ float64) {
		c.blendPixel(px, py, col)
	})
}

// FillRadial fills a circle of radius r with a radial gradient reaching
// out to extent.
func (c *Canvas) FillRadial(cx, cy, r, extent float64, stops []GradientStop) {
	if extent <= 0 {
		return
	}
	c.eachInCircle(cx, cy, r, func(px, py int, dist float64) {
		c.blendPixel(px, py, gradientAt(stops, dist/extent))
	})
}

// StrokeLine draws a segment of the given width.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	half := math.Max(width, 1/c.ratio) / 2
	bx0, by0, bx1, by1 := c.pixelBox(
		math.Min(x0, x1)-half, math.Min(y0, y1)-half,
		math.Max(x0, x1)+half, math.Max(y0, y1)+half,
	)
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	for py := by0; py < by1; py++ {
		for px := bx0; px < bx1; px++ {
			lx := (float64(px) + 0.5) / c.ratio
			ly := (float64(py) + 0.5) / c.ratio
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, ((lx-x0)*dx+(ly-y0)*dy)/lenSq))
			}
			ex := lx - (x0 + t*dx)
			ey := ly - (y0 + t*dy)
			if ex*ex+ey*ey <= half*half {
				c.blendPixel(px, py, col)
			}
		}
	}
}

// eachInCircle visits device pixels whose centers lie within r of
// (cx, cy), passing the logical distance.
func (c *Canvas) eachInCircle(cx, cy, r float64, fn func(px, py int, dist float64)) {
	if r <= 0 {
		return
	}
	x0, y0, x1, y1 := c.pixelBox(cx-r, cy-r, cx+r, cy+r)
	rSq := r * r
	for py := y0; py < y1; py++ {
		ly := (float64(py)+0.5)/c.ratio - cy
		for px := x0; px < x1; px++ {
			lx := (float64(px)+0.5)/c.ratio - cx
			d := lx*lx + ly*ly
			if d <= rSq {
				fn(px, py, math.Sqrt(d))
			}
		}
	}
}

// pixelBox converts a logical box to clipped device pixel bounds.
func (c *Canvas) pixelBox(x0, y0, x1, y1 float64) (int, int, int, int) {
	b := c.img.Bounds()
	px0 := max(int(math.Floor(x0*c.ratio)), b.Min.X)
	py0 := max(int(math.Floor(y0*c.ratio)), b.Min.Y)
	px1 := min(int(math.Ceil(x1*c.ratio)), b.Max.X)
	py1 := min(int(math.Ceil(y1*c.ratio)), b.Max.Y)
	return px0, py0, px1, py1
}

// blendPixel composites a straight-alpha color onto one device pixel.
func (c *Canvas) blendPixel(px, py int, src color.NRGBA) {
	if src.A == 0 {
		return
	}
	i := c.img.PixOffset(px, py)
	p := c.img.Pix[i : i+4 : i+4]
	a := float64(src.A) / 255

	switch c.blend {
	case BlendAdditive:
		p[0] = addClamp(p[0], float64(src.R)*a)
		p[1] = addClamp(p[1], float64(src.G)*a)
		p[2] = addClamp(p[2], float64(src.B)*a)
		p[3] = addClamp(p[3], float64(src.A))
	default:
		inv := 1 - a
		p[0] = uint8(float64(src.R)*a + float64(p[0])*inv + 0.5)
		p[1] = uint8(float64(src.G)*a + float64(p[1])*inv + 0.5)
		p[2] = uint8(float64(src.B)*a + float64(p[2])*inv + 0.5)
		p[3] = uint8(float64(src.A) + float64(p[3])*inv + 0.5)
	}
}

func addClamp(dst uint8, v float64) uint8 {
	s := float64(dst) + v + 0.5
	if s >= 255 {
		return 255
	}
	return uint8(s)
}
