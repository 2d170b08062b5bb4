// Package color holds the packed ARGB color type, its HSV and HSL
// representations, and the operations derived from them.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a textual color cannot be parsed.
var ErrInvalidFormat = errors.New("invalid color format")

// Color is a packed 32-bit ARGB value, 8 bits per channel.
// It is the interchange format between all representations.
type Color uint32

// Common colors.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
)

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Packed returns c itself, making Color a Model.
func (c Color) Packed() Color { return c }

// FromPacked returns p. It lets Color take part in Convert.
func (Color) FromPacked(p Color) Color { return p }

// ParseHex parses "#RRGGBB" or "#AARRGGBB". Six-digit input is opaque.
func ParseHex(s string) (Color, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("%w: %q: missing leading #", ErrInvalidFormat, s)
	}
	if len(digits) != 6 && len(digits) != 8 {
		return 0, fmt.Errorf("%w: %q: must be 6 or 8 hex digits", ErrInvalidFormat, s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidFormat, s, err)
	}
	if len(digits) == 6 {
		v |= 0xFF000000
	}
	return Color(v), nil
}

// MustParseHex is like ParseHex but panics on error. Intended for constants
// and tests.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#RRGGBB" in uppercase. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
}

// HexBare returns the color as "RRGGBB" without the leading #.
func (c Color) HexBare() string {
	return c.Hex()[1:]
}

// HexAlpha returns the color as "#AARRGGBB".
func (c Color) HexAlpha() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A(), c.R(), c.G(), c.B())
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R(), c.G(), c.B())
}

func (c Color) String() string {
	return c.Hex()
}
