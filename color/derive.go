package color

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// Preference biases Foreground towards black or white text.
type Preference int

const (
	PreferNone Preference = iota
	PreferBlack
	PreferWhite
)

// threshold is the brightness below which white text is chosen.
func (p Preference) threshold() float64 {
	switch p {
	case PreferBlack:
		return 75
	case PreferWhite:
		return 180
	default:
		return 130
	}
}

func (p Preference) String() string {
	switch p {
	case PreferBlack:
		return "black"
	case PreferWhite:
		return "white"
	default:
		return "none"
	}
}

// ParsePreference parses "none", "black" or "white".
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return PreferNone, nil
	case "black":
		return PreferBlack, nil
	case "white":
		return PreferWhite, nil
	}
	return PreferNone, fmt.Errorf("unknown preference %q (valid: none, black, white)", s)
}

// Brightness estimates perceived brightness in [0, 255]:
// sqrt(0.241*R² + 0.691*G² + 0.068*B²).
// See http://www.nbdtech.com/Blog/archive/2008/04/27/Calculating-the-Perceived-Brightness-of-a-Color.aspx
func Brightness(m Model) float64 {
	c := m.Packed()
	r, g, b := float64(c.R()), float64(c.G()), float64(c.B())
	return math.Sqrt(0.241*r*r + 0.691*g*g + 0.068*b*b)
}

// Foreground returns Black or White, whichever reads better on m.
func Foreground(m Model, p Preference) Color {
	if Brightness(m) < p.threshold() {
		return White
	}
	return Black
}

// Complement inverts the RGB channels and keeps alpha.
func Complement(m Model) Color {
	c := m.Packed()
	return ARGB(c.A(), ^c.R(), ^c.G(), ^c.B())
}

// Compare orders colors by hue, then saturation, then value. Colors with
// equal HSV are ordered by their packed ARGB value, so Compare returns 0
// for packed colors only when Equal holds.
func Compare(a, b Model) int {
	x, y := ToHSV(a), ToHSV(b)
	if c := cmp.Compare(x.H, y.H); c != 0 {
		return c
	}
	if c := cmp.Compare(x.S, y.S); c != 0 {
		return c
	}
	if c := cmp.Compare(x.V, y.V); c != 0 {
		return c
	}
	return cmp.Compare(a.Packed(), b.Packed())
}

// Darken multiplies each RGB channel by factor. A factor above 1 brightens.
func Darken(m Model, factor float64) Color {
	return scale(m.Packed(), factor)
}

// Brighten divides each RGB channel by factor, the inverse of Darken.
// A factor of zero or less saturates every non-zero channel.
func Brighten(m Model, factor float64) Color {
	if factor <= 0 {
		return scale(m.Packed(), math.Inf(1))
	}
	return scale(m.Packed(), 1/factor)
}

func scale(c Color, k float64) Color {
	return ARGB(c.A(), scaleChannel(c.R(), k), scaleChannel(c.G(), k), scaleChannel(c.B(), k))
}

func scaleChannel(ch uint8, k float64) uint8 {
	if ch == 0 {
		return 0
	}
	v := float64(ch) * k
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Lighten raises HSL lightness by amount, capped at 1.
func Lighten(m Model, amount float64) Color {
	hsl := ToHSL(m)
	return withAlpha(hsl.WithLightness(math.Min(1, hsl.L+amount)).Packed(), m.Packed().A())
}

// Shade lowers HSL lightness by amount, floored at 0.
func Shade(m Model, amount float64) Color {
	hsl := ToHSL(m)
	return withAlpha(hsl.WithLightness(math.Max(0, hsl.L-amount)).Packed(), m.Packed().A())
}

func withAlpha(c Color, a uint8) Color {
	return ARGB(a, c.R(), c.G(), c.B())
}

// Luminance returns the WCAG relative luminance in [0, 1].
func Luminance(m Model) float64 {
	r, g, b := toColorful(m.Packed()).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
func ContrastRatio(a, b Model) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Distance returns the perceptual CIE76 distance between a and b in Lab.
func Distance(a, b Model) float64 {
	return toColorful(a.Packed()).DistanceLab(toColorful(b.Packed()))
}
