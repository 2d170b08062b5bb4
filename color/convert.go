package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Model is implemented by every color representation. Derived operations
// are written once against it.
type Model interface {
	Packed() Color
}

// Representation is a Model that can also be built from a packed color.
type Representation[T any] interface {
	Model
	FromPacked(Color) T
}

// Convert converts any Model into the representation T by way of its
// packed color.
func Convert[T Representation[T]](m Model) T {
	var zero T
	return zero.FromPacked(m.Packed())
}

// ToHSV converts m to HSV.
func ToHSV(m Model) HSV {
	if hsv, ok := m.(HSV); ok {
		return hsv
	}
	return m.Packed().HSV()
}

// ToHSL converts m to HSL.
func ToHSL(m Model) HSL {
	if hsl, ok := m.(HSL); ok {
		return hsl
	}
	return m.Packed().HSL()
}

// Equal reports whether a and b denote the same packed color.
func Equal(a, b Model) bool {
	return a.Packed() == b.Packed()
}

// HSV is hue [0, 360), saturation [0, 1] and value [0, 1].
type HSV struct {
	H, S, V float64
}

// HSL is hue [0, 360), saturation [0, 1] and lightness [0, 1].
type HSL struct {
	H, S, L float64
}

// HSV converts c to HSV. Alpha is dropped.
func (c Color) HSV() HSV {
	h, s, v := toColorful(c).Hsv()
	return HSV{H: h, S: s, V: v}
}

// HSL converts c to HSL. Alpha is dropped.
func (c Color) HSL() HSL {
	h, s, l := toColorful(c).Hsl()
	return HSL{H: h, S: s, L: l}
}

// Packed converts to an opaque packed color.
func (c HSV) Packed() Color {
	return fromColorful(colorful.Hsv(normalizeHue(c.H), clamp01(c.S), clamp01(c.V)))
}

func (HSV) FromPacked(p Color) HSV { return p.HSV() }

func (c HSV) WithHue(h float64) HSV        { c.H = h; return c }
func (c HSV) WithSaturation(s float64) HSV { c.S = s; return c }
func (c HSV) WithValue(v float64) HSV      { c.V = v; return c }

// HSL converts through the packed color.
func (c HSV) HSL() HSL { return c.Packed().HSL() }

// Packed converts to an opaque packed color.
func (c HSL) Packed() Color {
	return fromColorful(colorful.Hsl(normalizeHue(c.H), clamp01(c.S), clamp01(c.L)))
}

func (HSL) FromPacked(p Color) HSL { return p.HSL() }

func (c HSL) WithHue(h float64) HSL        { c.H = h; return c }
func (c HSL) WithSaturation(s float64) HSL { c.S = s; return c }
func (c HSL) WithLightness(l float64) HSL  { c.L = l; return c }

// HSV converts through the packed color.
func (c HSL) HSV() HSV { return c.Packed().HSV() }

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255.0,
		G: float64(c.G()) / 255.0,
		B: float64(c.B()) / 255.0,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// normalizeHue maps any hue into [0, 360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
