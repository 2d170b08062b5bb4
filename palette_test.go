package swatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/material"
	"github.com/jsvensson/swatch/randomcolor"
)

const samplePalette = `
meta {
  name   = "Indigo"
  author = "Tester"
}

family "teal" {
  hue    = [170, 200]
  bounds = [[20, 100], [60, 80], [100, 55]]
}

seed {
  primary = "#3F51B5"
  accent  = complement(seed.primary)
  yellow  = "#FFEB3B"
}

random "teals" {
  family     = "teal"
  count      = 4
  seed       = 7
}

random "grays" {
  family = "monochrome"
  count  = 3
}
`

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palette.swatch")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writePalette(t, samplePalette))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if p.Meta.Name != "Indigo" || p.Meta.Author != "Tester" {
		t.Errorf("Meta = %+v", p.Meta)
	}
	if got := strings.Join(p.Order, ","); got != "primary,accent,yellow" {
		t.Errorf("Order = %s, want primary,accent,yellow", got)
	}
	if len(p.Families) != 1 || p.Families[0] != "TEAL" {
		t.Errorf("Families = %v, want [TEAL]", p.Families)
	}

	primary, ok := p.Seed("primary")
	if !ok {
		t.Fatal("seed primary missing")
	}
	if primary.Color.Hex() != "#3F51B5" {
		t.Errorf("primary = %s, want #3F51B5", primary.Color.Hex())
	}
	if primary.Text != color.White {
		t.Errorf("primary text = %s, want #FFFFFF", primary.Text.Hex())
	}
	if got, _ := primary.Tone(material.Step900); got != primary.Tones.Tone900() {
		t.Errorf("Tone(900) = %s, want %s", got.Hex(), primary.Tones.Tone900().Hex())
	}

	yellow, _ := p.Seed("yellow")
	if yellow.Text != color.Black {
		t.Errorf("yellow text = %s, want #000000", yellow.Text.Hex())
	}

	accent, _ := p.Seed("accent")
	if accent.Color.Hex() != "#C0AE4A" {
		t.Errorf("accent = %s, want #C0AE4A", accent.Color.Hex())
	}
}

func TestLoad_RandomSets(t *testing.T) {
	p, err := Load(writePalette(t, samplePalette))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	teals := p.Random["teals"]
	if len(teals) != 4 {
		t.Fatalf("len(teals) = %d, want 4", len(teals))
	}
	for _, c := range teals {
		h := c.HSV().H
		// 8-bit channels shift the hue a few degrees at low saturation.
		if h < 165 || h > 205 {
			t.Errorf("teal %s hue %v outside family range", c.Hex(), h)
		}
	}

	grays := p.Random["grays"]
	if len(grays) != 3 {
		t.Fatalf("len(grays) = %d, want 3", len(grays))
	}
	for _, c := range grays {
		if c.R() != c.G() || c.G() != c.B() {
			t.Errorf("gray %s is not achromatic", c.Hex())
		}
	}
}

func TestLoad_SeededSetsAreStable(t *testing.T) {
	path := writePalette(t, samplePalette)
	a, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Random["teals"] {
		if a.Random["teals"][i] != b.Random["teals"][i] {
			t.Errorf("teals[%d] differs between loads: %s vs %s", i, a.Random["teals"][i].Hex(), b.Random["teals"][i].Hex())
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing seed", `meta { name = "x" }`, "no seed block"},
		{"bad reference", "seed {\n  a = seed.b\n}", "seed.a"},
		{"unknown family", "seed { a = \"#000000\" }\nrandom \"r\" { family = \"teal\" }", "unknown family"},
		{"hue past full circle", "family \"wide\" {\n  hue = [300, 420]\n  bounds = [[20, 100]]\n}\nseed { a = \"#000000\" }", "outside [-360, 360)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePalette(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "loading palette") {
				t.Errorf("error = %q, want loading palette prefix", err.Error())
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadSource(t *testing.T) {
	p, err := LoadSource([]byte(`seed { base = hsv(0, 1, 1) }`), "inline.swatch")
	if err != nil {
		t.Fatalf("LoadSource() error: %v", err)
	}
	if got := p.Seeds["base"].Color.Hex(); got != "#FF0000" {
		t.Errorf("base = %s, want #FF0000", got)
	}
}

func TestSwatches_SourceOrder(t *testing.T) {
	p, err := LoadSource([]byte("seed {\n  z = \"#000000\"\n  a = \"#FFFFFF\"\n}"), "order.swatch")
	if err != nil {
		t.Fatal(err)
	}
	sw := p.Swatches()
	if len(sw) != 2 || sw[0].Name != "z" || sw[1].Name != "a" {
		t.Errorf("Swatches() = %v, want z then a", sw)
	}
	var _ color.Model = sw[0]
}

func TestLoad_CustomFamiliesStayLocal(t *testing.T) {
	if _, err := LoadSource([]byte(samplePalette), "p.swatch"); err != nil {
		t.Fatal(err)
	}

	g := randomcolor.New()
	if _, ok := g.Family("TEAL"); ok {
		t.Error("custom family leaked into a fresh generator")
	}
}
