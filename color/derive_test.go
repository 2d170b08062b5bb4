package color

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestBrightness(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  float64
	}{
		{"black", Black, 0},
		{"white", White, 255},
		{"red", RGB(255, 0, 0), math.Sqrt(0.241 * 255 * 255)},
		{"gray", RGB(128, 128, 128), 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Brightness(tt.color); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Brightness(%s) = %f, want %f", tt.color, got, tt.want)
			}
		})
	}
}

func TestForeground(t *testing.T) {
	gray := RGB(128, 128, 128)
	tests := []struct {
		name  string
		color Color
		pref  Preference
		want  Color
	}{
		{"white none", White, PreferNone, Black},
		{"white on white pref", White, PreferWhite, Black},
		{"black none", Black, PreferNone, White},
		{"black black pref", Black, PreferBlack, White},
		{"black white pref", Black, PreferWhite, White},
		{"gray none", gray, PreferNone, White},
		{"gray black pref", gray, PreferBlack, Black},
		{"gray white pref", gray, PreferWhite, White},
		{"model HSV", HSV{60, 1, 1}, PreferNone, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Foreground(tt.color, tt.pref); got != tt.want {
				t.Errorf("Foreground(%v, %s) = %s, want %s", tt.color, tt.pref, got, tt.want)
			}
		})
	}
}

func TestParsePreference(t *testing.T) {
	tests := []struct {
		input   string
		want    Preference
		wantErr bool
	}{
		{"", PreferNone, false},
		{"none", PreferNone, false},
		{"Black", PreferBlack, false},
		{"white", PreferWhite, false},
		{"grey", PreferNone, true},
	}
	for _, tt := range tests {
		got, err := ParsePreference(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreference(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComplement(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  Color
	}{
		{"opaque red", MustParseHex("#FFFF0000"), MustParseHex("#FF00FFFF")},
		{"black", Black, White},
		{"alpha kept", ARGB(0x80, 0x12, 0x34, 0x56), ARGB(0x80, 0xED, 0xCB, 0xA9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Complement(tt.color); got != tt.want {
				t.Errorf("Complement(%s) = %s, want %s", tt.color.HexAlpha(), got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestCompare(t *testing.T) {
	red := HSV{0, 1, 1}
	green := HSV{120, 1, 1}
	blue := HSV{240, 1, 1}

	if Compare(red, green) >= 0 {
		t.Error("red should sort before green")
	}
	if Compare(green, blue) >= 0 {
		t.Error("green should sort before blue")
	}
	if Compare(blue, red) <= 0 {
		t.Error("blue should sort after red")
	}
	if Compare(RGB(10, 20, 30), RGB(10, 20, 30)) != 0 {
		t.Error("identical colors should compare equal")
	}
	if Compare(HSV{120, 0.5, 1}, HSV{120, 1, 1}) >= 0 {
		t.Error("saturation should break hue ties")
	}
	if Compare(HSV{120, 1, 0.5}, HSV{120, 1, 1}) >= 0 {
		t.Error("value should break saturation ties")
	}
}

func TestCompare_Alpha(t *testing.T) {
	clear, opaque := ARGB(0x00, 255, 0, 0), ARGB(0xFF, 255, 0, 0)

	if got := Compare(clear, opaque); got >= 0 {
		t.Errorf("Compare(%s, %s) = %d, want < 0", clear.HexAlpha(), opaque.HexAlpha(), got)
	}
	if got := Compare(opaque, clear); got <= 0 {
		t.Errorf("Compare(%s, %s) = %d, want > 0", opaque.HexAlpha(), clear.HexAlpha(), got)
	}
	if Equal(clear, opaque) {
		t.Error("colors differing in alpha should not be equal")
	}
	if got := Compare(opaque, RGB(255, 0, 0)); got != 0 {
		t.Errorf("Compare of equal colors = %d, want 0", got)
	}
}

func TestCompare_StrictWeakOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	colors := make([]Color, 40)
	for i := range colors {
		colors[i] = RGB(uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)))
	}

	for _, a := range colors {
		if Compare(a, a) != 0 {
			t.Fatalf("Compare(%s, %s) != 0", a, a)
		}
		for _, b := range colors {
			if Compare(a, b) != -Compare(b, a) {
				t.Fatalf("Compare(%s, %s) not antisymmetric", a, b)
			}
			for _, c := range colors {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Fatalf("Compare not transitive for %s < %s < %s", a, b, c)
				}
			}
		}
	}

	sorted := slices.Clone(colors)
	slices.SortFunc(sorted, func(a, b Color) int { return Compare(a, b) })
	for i := 1; i < len(sorted); i++ {
		if Compare(sorted[i-1], sorted[i]) > 0 {
			t.Errorf("sorted[%d] = %s after %s", i, sorted[i], sorted[i-1])
		}
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name   string
		color  Color
		factor float64
		want   Color
	}{
		{"half", RGB(200, 100, 50), 0.5, RGB(100, 50, 25)},
		{"truncates", RGB(255, 255, 255), 0.9, RGB(229, 229, 229)},
		{"factor above one brightens", RGB(200, 100, 50), 2, RGB(255, 200, 100)},
		{"zero factor", RGB(200, 100, 50), 0, RGB(0, 0, 0)},
		{"negative factor", RGB(200, 100, 50), -1, RGB(0, 0, 0)},
		{"alpha kept", ARGB(0x40, 200, 100, 50), 0.5, ARGB(0x40, 100, 50, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Darken(tt.color, tt.factor); got != tt.want {
				t.Errorf("Darken(%s, %v) = %s, want %s", tt.color.HexAlpha(), tt.factor, got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestBrighten(t *testing.T) {
	tests := []struct {
		name   string
		color  Color
		factor float64
		want   Color
	}{
		{"inverse of darken", RGB(100, 50, 25), 0.5, RGB(200, 100, 50)},
		{"factor above one darkens", RGB(100, 50, 25), 2, RGB(50, 25, 12)},
		{"clamped", RGB(200, 100, 50), 0.25, RGB(255, 255, 200)},
		{"black stays black", Black, 0.5, Black},
		{"zero factor saturates", RGB(1, 0, 2), 0, RGB(255, 0, 255)},
		{"negative factor saturates", RGB(1, 0, 2), -2, RGB(255, 0, 255)},
		{"negative zero saturates", RGB(1, 0, 2), math.Copysign(0, -1), RGB(255, 0, 255)},
		{"alpha kept", ARGB(0x40, 100, 50, 25), 0.5, ARGB(0x40, 200, 100, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Brighten(tt.color, tt.factor); got != tt.want {
				t.Errorf("Brighten(%s, %v) = %s, want %s", tt.color.HexAlpha(), tt.factor, got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestLightenShade(t *testing.T) {
	tests := []struct {
		name string
		got  Color
		want Color
	}{
		{"lighten red", Lighten(RGB(255, 0, 0), 0.1), RGB(255, 51, 51)},
		{"lighten white stays", Lighten(White, 0.5), White},
		{"shade red", Shade(RGB(255, 0, 0), 0.1), RGB(204, 0, 0)},
		{"shade black stays", Shade(Black, 0.5), Black},
		{"shade keeps alpha", Shade(ARGB(0x10, 255, 255, 255), 1), ARGB(0x10, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestLuminanceAndContrast(t *testing.T) {
	if got := Luminance(White); math.Abs(got-1) > 1e-6 {
		t.Errorf("Luminance(white) = %f, want 1", got)
	}
	if got := Luminance(Black); got != 0 {
		t.Errorf("Luminance(black) = %f, want 0", got)
	}
	red := RGB(255, 0, 0)
	if l := Luminance(red); l <= 0 || l >= 1 {
		t.Errorf("Luminance(red) = %f, want between 0 and 1", l)
	}
	if got := ContrastRatio(White, Black); math.Abs(got-21) > 1e-3 {
		t.Errorf("ContrastRatio(white, black) = %f, want 21", got)
	}
	if got := ContrastRatio(Black, White); math.Abs(got-21) > 1e-3 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", got)
	}
	if got := ContrastRatio(red, red); got != 1 {
		t.Errorf("ContrastRatio(red, red) = %f, want 1", got)
	}
}

func TestNamed(t *testing.T) {
	got, err := Named("SkyBlue")
	if err != nil {
		t.Fatalf("Named(SkyBlue) error: %v", err)
	}
	if want := RGB(135, 206, 235); got != want {
		t.Errorf("Named(SkyBlue) = %s, want %s", got, want)
	}

	_, err = Named("notacolor")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Named(notacolor) error = %v, want ErrInvalidFormat", err)
	}
}

func TestNearest(t *testing.T) {
	name, c := Nearest(RGB(135, 206, 235))
	if name != "skyblue" || c != RGB(135, 206, 235) {
		t.Errorf("Nearest(#87CEEB) = %s %s, want skyblue", name, c)
	}

	name, _ = Nearest(RGB(254, 1, 1))
	if name != "red" {
		t.Errorf("Nearest(#FE0101) = %s, want red", name)
	}
}
