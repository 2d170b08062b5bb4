// Package randomcolor generates visually pleasing random colors by sampling
// hue, saturation and brightness within calibrated per-family bounds.
package randomcolor

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jsvensson/swatch/color"
	"github.com/tliron/commonlog"
)

// ErrInvalidArgument is returned for non-positive counts, unknown family
// names and malformed family definitions.
var ErrInvalidArgument = errors.New("invalid argument")

// fullCircle is the hue range used when no family restricts it.
var fullCircle = Range{0, 359}

// Generator samples random colors.
//
// Samples are integers internally: hue in degrees [0, 359], saturation and
// brightness in [0, 100]. They are returned as color.HSV with S and V
// divided by 100.
//
// A Generator using the default random source is safe for concurrent
// sampling. Generators created WithSeed or WithRand, and any call to
// DefineColor, require exclusive access.
type Generator struct {
	table  *Table
	shared bool
	float  func() float64
	log    commonlog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed uses a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.float = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
	}
}

// WithRand uses r as the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.float = r.Float64
	}
}

// WithLogger replaces the generator's logger.
func WithLogger(log commonlog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// New returns a Generator backed by the shared default table.
func New(opts ...Option) *Generator {
	g := &Generator{
		table:  DefaultTable(),
		shared: true,
		float:  rand.Float64,
		log:    commonlog.GetLogger("swatch.randomcolor"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Families returns the registered family names in registration order.
func (g *Generator) Families() []string {
	return g.table.Names()
}

// Family returns the calibration of the named family.
func (g *Generator) Family(name string) (ColorInfo, bool) {
	return g.table.Lookup(name)
}

// FamilyOf returns the family whose hue range contains hue.
func (g *Generator) FamilyOf(hue int) (string, ColorInfo, bool) {
	return g.table.lookupHue(hue)
}

// DefineColor registers or overwrites a family. The saturation range is
// [first.Start, last.Start] and the brightness range [last.End, first.End]
// of the bounds sorted by saturation. A nil hueRange spans the whole circle.
func (g *Generator) DefineColor(name string, hueRange *Range, lowerBounds []Range) error {
	if name == "" {
		return fmt.Errorf("%w: family name must not be empty", ErrInvalidArgument)
	}
	if g.shared {
		g.table = g.table.clone()
		g.shared = false
	}
	if err := g.table.define(name, hueRange, lowerBounds); err != nil {
		return err
	}
	info, _ := g.table.Lookup(name)
	g.log.Debugf("defined family %s: saturation %s, brightness %s", name, info.SaturationRange, info.BrightnessRange)
	return nil
}

// Color samples a color from any family.
func (g *Generator) Color() color.HSV {
	c, _ := g.ColorWith(Options{})
	return c
}

// Colors returns count independent samples.
func (g *Generator) Colors(count int) ([]color.HSV, error) {
	return g.ColorsWith(Options{}, count)
}

// FamilyColor samples a color from the named family.
func (g *Generator) FamilyColor(name string) (color.HSV, error) {
	return g.ColorWith(Options{Family: name})
}

// FamilyColors returns count independent samples from the named family.
func (g *Generator) FamilyColors(name string, count int) ([]color.HSV, error) {
	return g.ColorsWith(Options{Family: name}, count)
}

// ColorsWith returns count independent samples using opts.
func (g *Generator) ColorsWith(opts Options, count int) ([]color.HSV, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be greater than 0, got %d", ErrInvalidArgument, count)
	}
	colors := make([]color.HSV, 0, count)
	for range count {
		c, err := g.ColorWith(opts)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// ColorWith samples one color using opts.
func (g *Generator) ColorWith(opts Options) (color.HSV, error) {
	var (
		hue     int
		info    ColorInfo
		hasInfo bool
		satType = opts.SaturationType
	)

	if opts.Family != "" {
		var ok bool
		info, ok = g.table.Lookup(opts.Family)
		if !ok {
			return color.HSV{}, fmt.Errorf("%w: unknown color family %q", ErrInvalidArgument, opts.Family)
		}
		hasInfo = true

		hueRange := fullCircle
		if info.HueRange != nil {
			hueRange = *info.HueRange
		} else if satType == SaturationAny {
			// A family without a hue is achromatic.
			satType = SaturationMonochrome
		}
		hue = g.pickHue(hueRange)
	} else {
		hue = g.pickHue(fullCircle)
		_, info, hasInfo = g.table.lookupHue(hue)
	}

	saturation := g.pickSaturation(info, hasInfo, satType, opts.Luminosity)
	brightness := g.pickBrightness(info, hasInfo, saturation, opts.Luminosity)

	return color.HSV{
		H: float64(hue),
		S: float64(saturation) / 100,
		V: float64(brightness) / 100,
	}, nil
}

func (g *Generator) pickHue(r Range) int {
	return normalizeHue(g.randomWithin(r))
}

// normalizeHue wraps hue into [0, 360). Red is stored as one range with a
// negative start.
func normalizeHue(hue int) int {
	return ((hue % 360) + 360) % 360
}

func (g *Generator) pickSaturation(info ColorInfo, hasInfo bool, satType SaturationType, lum Luminosity) int {
	switch satType {
	case SaturationRandom:
		return g.randomWithin(Range{0, 100})
	case SaturationMonochrome:
		return 0
	}

	if lum == LuminosityRandom || !hasInfo {
		return g.randomWithin(Range{0, 100})
	}

	lo, hi := info.SaturationRange.Start, info.SaturationRange.End
	switch lum {
	case Bright:
		lo = hi - 10
	case Light:
		lo = min(55, hi)
	case Dark:
		hi = max(55, lo)
	}
	return g.randomWithin(Range{lo, hi})
}

func (g *Generator) pickBrightness(info ColorInfo, hasInfo bool, saturation int, lum Luminosity) int {
	lo, hi := 0, 100
	if hasInfo {
		lo = MinimumBrightness(info, saturation)
	}

	switch lum {
	case Dark:
		hi = min(lo+20, 100)
	case Light:
		lo = (hi + lo) / 2
	case LuminosityRandom:
		lo, hi = 0, 100
	}
	return g.randomWithin(Range{lo, hi})
}

// randomWithin returns a uniformly distributed integer in [r.Start, r.End].
func (g *Generator) randomWithin(r Range) int {
	return int(math.Floor(float64(r.Start) + g.float()*float64(r.End+1-r.Start)))
}

// MinimumBrightness interpolates the family's lower-bound curve at
// saturation. For consecutive points (s1, v1), (s2, v2) with
// s1 <= saturation <= s2 it returns floor of the line through them.
// Saturations outside the curve yield 0.
func MinimumBrightness(info ColorInfo, saturation int) int {
	bounds := info.LowerBounds
	for i := 0; i+1 < len(bounds); i++ {
		s1, v1 := bounds[i].Start, bounds[i].End
		s2, v2 := bounds[i+1].Start, bounds[i+1].End
		if saturation < s1 || saturation > s2 {
			continue
		}
		if s1 == s2 {
			return v1
		}
		// v1 + (v2-v1)*(s-s1)/(s2-s1), floored exactly in integers.
		return floorDiv(v1*(s2-s1)+(v2-v1)*(saturation-s1), s2-s1)
	}
	return 0
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
