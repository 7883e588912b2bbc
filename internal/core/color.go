package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Palette used by sessions and built-in levels.
var (
	ColorBlack    = RGB(0, 0, 0)
	ColorWhite    = RGB(1, 1, 1)
	ColorRed      = RGB(0.9, 0.16, 0.22)
	ColorSkyBlue  = RGB(0.4, 0.75, 1)
	ColorOrange   = RGB(1, 0.63, 0)
	ColorYellow   = RGB(0.99, 0.98, 0)
	ColorGray     = RGB(0.51, 0.51, 0.51)
	ColorSoftPink = RGB(1, 0.5, 0.8)
	ColorMagenta  = RGB(1, 0, 0.5)
)

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Mix interpolates from a (t=0) to b (t=1) in RGB, alpha included.
func Mix(a, b Color, t float64) Color {
	m := a.colorful().BlendRgb(b.colorful(), t)
	return Color{R: m.R, G: m.G, B: m.B, A: a.A + (b.A-a.A)*t}
}

// Mul scales the RGB channels, keeping alpha.
func (c Color) Mul(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

// AlphaMul scales alpha only.
func (c Color) AlphaMul(f float64) Color {
	c.A *= f
	return c
}

// WithAlpha replaces alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Over composites c over an opaque background.
func (c Color) Over(bg Color) Color {
	a := ClampF(c.A, 0, 1)
	out := Mix(bg.WithAlpha(1), c.WithAlpha(1), a)
	out.A = 1
	return out
}

// Hex returns the #rrggbb form of the clamped RGB channels.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// ParseHex parses #rrggbb or #rgb into an opaque color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return RGB(c.R, c.G, c.B), nil
}

// ColorFunc maps beat-time to a color.
type ColorFunc func(t float64) Color

// Constant returns a ColorFunc that ignores time.
func Constant(c Color) ColorFunc {
	return func(float64) Color { return c }
}
