package funcs

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/swatch/color"
	"github.com/zclconf/go-cty/cty"
)

func eval(t *testing.T, src string, seeds map[string]color.Color) (cty.Value, hcl.Diagnostics) {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.swatch", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		t.Fatalf("parsing %q: %s", src, diags.Error())
	}
	return expr.Value(BuildEvalContext(seeds))
}

func TestFunctions(t *testing.T) {
	seeds := map[string]color.Color{
		"primary": color.MustParseHex("#3F51B5"),
		"red":     color.MustParseHex("#FF0000"),
	}

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"seed reference", `seed.primary`, "#3F51B5"},
		{"darken", `darken("#C86432", 0.5)`, "#643219"},
		{"brighten", `brighten("#643219", 0.5)`, "#C86432"},
		{"brighten saturates", `brighten("#C86432", 0.5)`, "#FFC864"},
		{"lighten", `lighten(seed.red, 0.1)`, "#FF3333"},
		{"shade", `shade(seed.red, 0.1)`, "#CC0000"},
		{"complement", `complement(seed.red)`, "#00FFFF"},
		{"complement keeps alpha", `complement("#80FF0000")`, "#8000FFFF"},
		{"foreground", `foreground(seed.primary, "none")`, "#FFFFFF"},
		{"foreground prefer black", `foreground("#808080", "black")`, "#000000"},
		{"tone 500", `tone(seed.primary, 500)`, "#3F51B5"},
		{"tone 900", `tone("#FF0000", 900)`, "#330000"},
		{"hsv", `hsv(120, 1, 1)`, "#00FF00"},
		{"hsl", `hsl(240, 1, 0.5)`, "#0000FF"},
		{"named", `named("SkyBlue")`, "#87CEEB"},
		{"nested", `complement(darken(seed.red, 0.5))`, "#80FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, diags := eval(t, tt.expr, seeds)
			if diags.HasErrors() {
				t.Fatalf("evaluating %s: %s", tt.expr, diags.Error())
			}
			if got := val.AsString(); got != tt.want {
				t.Errorf("%s = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFunctions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{"bad hex", `darken("red", 0.5)`, "invalid color format"},
		{"unknown name", `named("notacolor")`, "invalid color format"},
		{"unknown step", `tone("#3F51B5", 400)`, "unknown tone step"},
		{"fractional step", `tone("#3F51B5", 500.5)`, "unknown tone step"},
		{"bad preference", `foreground("#3F51B5", "grey")`, "preference"},
		{"missing seed", `seed.nope`, "Unsupported attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := eval(t, tt.expr, map[string]color.Color{"primary": color.Black})
			if !diags.HasErrors() {
				t.Fatalf("evaluating %s: expected error", tt.expr)
			}
			if !strings.Contains(diags.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", diags.Error(), tt.wantErr)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name    string
		val     cty.Value
		want    color.Color
		wantErr bool
	}{
		{"hex", cty.StringVal("#3F51B5"), color.MustParseHex("#3F51B5"), false},
		{"alpha hex", cty.StringVal("#803F51B5"), color.ARGB(0x80, 0x3F, 0x51, 0xB5), false},
		{"bad string", cty.StringVal("blue"), 0, true},
		{"number", cty.NumberIntVal(3), 0, true},
		{"null", cty.NullVal(cty.String), 0, true},
		{"unknown", cty.UnknownVal(cty.String), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveColor(tt.val)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveColor() = %s, want %s", got.HexAlpha(), tt.want.HexAlpha())
			}
		})
	}
}

func TestSeedsToCty(t *testing.T) {
	if got := SeedsToCty(nil); !got.RawEquals(cty.EmptyObjectVal) {
		t.Errorf("SeedsToCty(nil) = %#v, want empty object", got)
	}

	val := SeedsToCty(map[string]color.Color{
		"base":  color.MustParseHex("#112233"),
		"glass": color.ARGB(0x80, 0x11, 0x22, 0x33),
	})
	if got := val.GetAttr("base").AsString(); got != "#112233" {
		t.Errorf("base = %q, want #112233", got)
	}
	if got := val.GetAttr("glass").AsString(); got != "#80112233" {
		t.Errorf("glass = %q, want #80112233", got)
	}
}

func TestOrderedAttributes(t *testing.T) {
	src := "c = 1\na = 2\nb = 3\n"
	file, diags := hclsyntax.ParseConfig([]byte(src), "test.swatch", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		t.Fatal(diags.Error())
	}
	attrs := OrderedAttributes(file.Body.(*hclsyntax.Body))
	var names []string
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	if got := strings.Join(names, ","); got != "c,a,b" {
		t.Errorf("OrderedAttributes() = %s, want c,a,b", got)
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"darken", "darken(color, factor)"},
		{"tone", "tone(color, step)"},
		{"named", "named(name)"},
	}
	for _, tt := range tests {
		got, ok := Signature(tt.name)
		if !ok || got != tt.want {
			t.Errorf("Signature(%q) = %q, %v, want %q", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := Signature("mix"); ok {
		t.Error("Signature(mix) found, want missing")
	}
	if Description("tone") == "" {
		t.Error("Description(tone) is empty")
	}
	if len(Names()) != len(Functions()) {
		t.Errorf("Names() has %d entries, want %d", len(Names()), len(Functions()))
	}
}
