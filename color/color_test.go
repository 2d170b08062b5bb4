package color

import (
	"errors"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"rgb", "#3F51B5", RGB(63, 81, 181), false},
		{"lowercase", "#eb6f92", RGB(235, 111, 146), false},
		{"black", "#000000", Black, false},
		{"white", "#ffffff", White, false},
		{"argb", "#80FF0000", ARGB(0x80, 255, 0, 0), false},
		{"transparent", "#00000000", ARGB(0, 0, 0, 0), false},
		{"without hash", "3F51B5", 0, true},
		{"too short", "#fff", 0, true},
		{"seven digits", "#1234567", 0, true},
		{"too long", "#aabbccddee", 0, true},
		{"invalid chars", "#zzzzzz", 0, true},
		{"sign", "#+12345", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseHex(%q) error = %v, want ErrInvalidFormat", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %s, want %s", tt.input, got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{"#3f51b5", "#EB6F92", "#000000", "#ffffff", "#00050a", "#AbCdEf"}
	for _, in := range inputs {
		c, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", in, err)
		}
		want := strings.ToUpper(in)
		if got := c.Hex(); got != want {
			t.Errorf("ParseHex(%q).Hex() = %q, want %q", in, got, want)
		}
	}
}

func TestChannels(t *testing.T) {
	c := ARGB(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("ARGB = %#x, want 0x12345678", uint32(c))
	}
	if c.A() != 0x12 || c.R() != 0x34 || c.G() != 0x56 || c.B() != 0x78 {
		t.Errorf("channels = %x %x %x %x", c.A(), c.R(), c.G(), c.B())
	}
}

func TestFormatting(t *testing.T) {
	c := ARGB(0x80, 235, 111, 146)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Hex drops alpha", c.Hex(), "#EB6F92"},
		{"HexBare", c.HexBare(), "EB6F92"},
		{"HexAlpha", c.HexAlpha(), "#80EB6F92"},
		{"RGB", c.RGB(), "rgb(235, 111, 146)"},
		{"String", c.String(), "#EB6F92"},
		{"zero padding", RGB(0, 5, 10).Hex(), "#00050A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex(\"nope\") did not panic")
		}
	}()
	MustParseHex("nope")
}
