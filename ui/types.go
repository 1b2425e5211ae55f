// Package ui draws the on-screen overlays: the pause indicator, the HUD
// and the perf panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme defines colors and spacing for UI elements.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	TitleColor  rl.Color
	HotColor    rl.Color
	WarmColor   rl.Color

	Padding    int32
	LineHeight int32
	LabelWidth int32
	FontSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.RayWhite,
		TitleColor:  rl.White,
		HotColor:    rl.Red,
		WarmColor:   rl.Orange,
		Padding:     10,
		LineHeight:  16,
		LabelWidth:  80,
		FontSize:    12,
	}
}

// IndicatorTheme styles the pause indicator.
type IndicatorTheme struct {
	Background rl.Color
	Border     rl.Color
	Text       rl.Color

	FontSize  int32
	PadX      int32
	PadY      int32
	MinWidth  int32
	TopOffset int32   // distance below the top of the swarm surface
	FadeSec   float32 // opacity transition time
}

// DefaultIndicatorTheme returns the indicator's default styling.
func DefaultIndicatorTheme() IndicatorTheme {
	return IndicatorTheme{
		Background: rl.Color{R: 45, G: 60, B: 85, A: 242},
		Border:     rl.Color{R: 100, G: 150, B: 255, A: 102},
		Text:       rl.Color{R: 255, G: 255, B: 255, A: 242},
		FontSize:   13,
		PadX:       20,
		PadY:       10,
		MinWidth:   280,
		TopOffset:  20,
		FadeSec:    0.3,
	}
}
