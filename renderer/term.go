package renderer

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top half of a cell in the foreground color.
const upperHalf = '▀'

// TermPresenter shows an image on a terminal, two pixels per cell.
type TermPresenter struct {
	screen tcell.Screen
}

// NewTermPresenter wraps an initialized tcell screen.
func NewTermPresenter(screen tcell.Screen) *TermPresenter {
	return &TermPresenter{screen: screen}
}

// Present samples img to the screen size and shows it.
func (t *TermPresenter) Present(img *image.RGBA) {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 || img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sample(img, col, row*2, cols, rows*2)
			bottom := sample(img, col, row*2+1, cols, rows*2)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bottom[0]), int32(bottom[1]), int32(bottom[2])))
			t.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	t.screen.Show()
}

// sample returns the nearest pixel for grid cell (x, y) of a w×h grid.
func sample(img *image.RGBA, x, y, w, h int) [3]uint8 {
	b := img.Bounds()
	px := b.Min.X + x*b.Dx()/w
	py := b.Min.Y + y*b.Dy()/h
	c := img.RGBAAt(px, py)
	return [3]uint8{c.R, c.G, c.B}
}
