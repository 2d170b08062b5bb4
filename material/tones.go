// Package material derives Material Design tonal variants from a seed color.
//
// Tones are produced by scaling the seed's HSL lightness around a pivot: the
// seed itself is tone 500, lighter tones multiply the pivot up and darker
// tones down. Tone 900 is pinned to a fixed lightness.
package material

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/randomcolor"
	"github.com/tliron/commonlog"
)

// ErrUnknownStep is returned for tone steps other than 100, 300, 500, 700
// and 900.
var ErrUnknownStep = errors.New("unknown tone step")

// Step identifies a tone.
type Step int

const (
	Step100 Step = 100
	Step300 Step = 300
	Step500 Step = 500
	Step700 Step = 700
	Step900 Step = 900
)

// Steps returns every tone step, lightest first.
func Steps() []Step {
	return []Step{Step100, Step300, Step500, Step700, Step900}
}

// ParseStep parses "100", "300", "500", "700" or "900".
func ParseStep(s string) (Step, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
	step := Step(n)
	if _, ok := multipliers[step]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	return step, nil
}

func (s Step) String() string {
	return strconv.Itoa(int(s))
}

var multipliers = map[Step]float64{
	Step100: 1.79,
	Step300: 1.333,
	Step500: 1.0,
	Step700: 0.58,
}

// Seed lightness outside [PivotLow, PivotHigh] produces uneven tones.
const (
	PivotLow  = 0.4
	PivotHigh = 0.6
)

const (
	tone900Lightness = 0.1

	tooDark        = 0.1
	tooDarkReplace = 0.25
)

// Uneven reports whether a seed of the given HSL lightness falls outside the
// pivot band.
func Uneven(lightness float64) bool {
	return lightness < PivotLow || lightness > PivotHigh
}

// Tones holds a seed color and its pivot lightness.
type Tones struct {
	seed  color.Color
	hsl   color.HSL
	pivot float64
}

// New computes the pivot lightness for seed. Seeds whose lightness falls
// outside [0.4, 0.6] produce uneven tones and are logged; seeds darker than
// 0.1 are pivoted at 0.25 instead.
func New(seed color.Model) Tones {
	c := seed.Packed()
	hsl := c.HSL()
	pivot := hsl.L

	if Uneven(pivot) {
		log := commonlog.GetLogger("swatch.material")
		log.Warningf("seed %s has lightness %.3f outside [%.1f, %.1f], tones may be uneven", c.Hex(), pivot, PivotLow, PivotHigh)
		if pivot < tooDark {
			pivot = tooDarkReplace
			log.Warningf("seed %s is too dark, pivoting at %.2f", c.Hex(), pivot)
		}
	}

	return Tones{seed: c, hsl: hsl, pivot: pivot}
}

// Random seeds tones from a generator sample.
func Random(g *randomcolor.Generator) Tones {
	return New(g.Color())
}

// Seed returns the color the tones were derived from.
func (t Tones) Seed() color.Color { return t.seed }

// Packed returns the seed color.
func (t Tones) Packed() color.Color { return t.seed }

// Pivot returns the lightness tones are scaled from.
func (t Tones) Pivot() float64 { return t.pivot }

// HSL returns the HSL value of step.
func (t Tones) HSL(step Step) (color.HSL, error) {
	if step == Step900 {
		return t.hsl.WithLightness(tone900Lightness), nil
	}
	m, ok := multipliers[step]
	if !ok {
		return color.HSL{}, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	return t.hsl.WithLightness(clamp01(t.pivot * m)), nil
}

// Tone returns the packed color of step.
func (t Tones) Tone(step Step) (color.Color, error) {
	hsl, err := t.HSL(step)
	if err != nil {
		return 0, err
	}
	return hsl.Packed(), nil
}

func (t Tones) must(step Step) color.Color {
	c, _ := t.Tone(step)
	return c
}

func (t Tones) Tone100() color.Color { return t.must(Step100) }
func (t Tones) Tone300() color.Color { return t.must(Step300) }
func (t Tones) Tone500() color.Color { return t.must(Step500) }
func (t Tones) Tone700() color.Color { return t.must(Step700) }
func (t Tones) Tone900() color.Color { return t.must(Step900) }

// All returns every tone keyed by step.
func (t Tones) All() map[Step]color.Color {
	out := make(map[Step]color.Color, len(multipliers)+1)
	for _, s := range Steps() {
		out[s] = t.must(s)
	}
	return out
}

// TextColor returns black or white, whichever reads better on the seed,
// leaning towards white.
func (t Tones) TextColor() color.Color {
	return color.Foreground(t.seed, color.PreferWhite)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
