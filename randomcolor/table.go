package randomcolor

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Range is an inclusive integer interval.
type Range struct {
	Start, End int
}

// Contains reports whether v lies in [Start, End].
func (r Range) Contains(v int) bool {
	return v >= r.Start && v <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// ColorInfo is the calibration of one color family.
//
// LowerBounds is a curve of (saturation, minimum brightness) points, sorted
// ascending by saturation. HueRange is nil for families that span the whole
// circle.
type ColorInfo struct {
	HueRange        *Range
	SaturationRange Range
	BrightnessRange Range
	LowerBounds     []Range
}

// Family names of the default table.
const (
	Monochrome = "MONOCHROME"
	Red        = "RED"
	Orange     = "ORANGE"
	Yellow     = "YELLOW"
	Green      = "GREEN"
	Blue       = "BLUE"
	Purple     = "PURPLE"
	Pink       = "PINK"
)

// Table maps family names to their calibration, remembering registration
// order so hue lookups are deterministic.
type Table struct {
	order []string
	infos map[string]ColorInfo
}

func newTable() *Table {
	return &Table{infos: make(map[string]ColorInfo)}
}

// Names returns family names in registration order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// Lookup returns the calibration for name.
func (t *Table) Lookup(name string) (ColorInfo, bool) {
	info, ok := t.infos[name]
	return info, ok
}

// clone returns a deep enough copy for define to mutate safely. ColorInfo
// values are never modified in place, so sharing them is fine.
func (t *Table) clone() *Table {
	return &Table{
		order: slices.Clone(t.order),
		infos: maps.Clone(t.infos),
	}
}

// Hue ranges may start below 0 so a family can straddle red, but never by
// more than a full turn.
const (
	minHueStart = -360
	maxHueEnd   = 359
)

// ValidateFamily checks a family definition. The hue range must be ordered
// and lie within [-360, 360), and every lower bound must be a
// (saturation, brightness) pair within [0, 100].
func ValidateFamily(hueRange *Range, lowerBounds []Range) error {
	if len(lowerBounds) == 0 {
		return fmt.Errorf("%w: at least one lower bound is required", ErrInvalidArgument)
	}
	if hueRange != nil {
		if hueRange.Start > hueRange.End {
			return fmt.Errorf("%w: hue start %d is greater than end %d", ErrInvalidArgument, hueRange.Start, hueRange.End)
		}
		if hueRange.Start < minHueStart || hueRange.End > maxHueEnd {
			return fmt.Errorf("%w: hue range %s outside [-360, 360)", ErrInvalidArgument, hueRange)
		}
	}
	for _, b := range lowerBounds {
		if b.Start < 0 || b.Start > 100 || b.End < 0 || b.End > 100 {
			return fmt.Errorf("%w: lower bound %s outside [0, 100]", ErrInvalidArgument, b)
		}
	}
	return nil
}

// define registers or overwrites a family. Bounds are copied and sorted by
// saturation.
func (t *Table) define(name string, hueRange *Range, lowerBounds []Range) error {
	if err := ValidateFamily(hueRange, lowerBounds); err != nil {
		return fmt.Errorf("family %q: %w", name, err)
	}

	bounds := slices.Clone(lowerBounds)
	slices.SortStableFunc(bounds, func(a, b Range) int { return a.Start - b.Start })

	first, last := bounds[0], bounds[len(bounds)-1]
	info := ColorInfo{
		SaturationRange: Range{first.Start, last.Start},
		BrightnessRange: Range{last.End, first.End},
		LowerBounds:     bounds,
	}
	if hueRange != nil {
		hr := *hueRange
		info.HueRange = &hr
	}

	if _, exists := t.infos[name]; !exists {
		t.order = append(t.order, name)
	}
	t.infos[name] = info
	return nil
}

// lookupHue returns the first family whose hue range contains hue.
// Hues in [334, 360] are shifted by -360 first so red, which straddles 0,
// is matched by its negative lower bound.
func (t *Table) lookupHue(hue int) (string, ColorInfo, bool) {
	if hue >= 334 && hue <= 360 {
		hue -= 360
	}
	for _, name := range t.order {
		info := t.infos[name]
		if info.HueRange != nil && info.HueRange.Contains(hue) {
			return name, info, true
		}
	}
	return "", ColorInfo{}, false
}

// DefaultTable returns the shared calibration table. It is built once and
// must not be modified.
var DefaultTable = sync.OnceValue(func() *Table {
	t := newTable()
	mustDefine := func(name string, hue *Range, bounds ...Range) {
		if err := t.define(name, hue, bounds); err != nil {
			panic(err)
		}
	}

	mustDefine(Monochrome, nil,
		Range{0, 0}, Range{100, 0})

	mustDefine(Red, &Range{-26, 18},
		Range{20, 100}, Range{30, 92}, Range{40, 89}, Range{50, 85}, Range{60, 78},
		Range{70, 70}, Range{80, 60}, Range{90, 55}, Range{100, 50})

	mustDefine(Orange, &Range{19, 46},
		Range{20, 100}, Range{30, 93}, Range{40, 88}, Range{50, 86}, Range{60, 85},
		Range{70, 70}, Range{100, 70})

	mustDefine(Yellow, &Range{47, 62},
		Range{25, 100}, Range{40, 94}, Range{50, 89}, Range{60, 86}, Range{70, 84},
		Range{80, 82}, Range{90, 80}, Range{100, 75})

	mustDefine(Green, &Range{63, 178},
		Range{30, 100}, Range{40, 90}, Range{50, 85}, Range{60, 81}, Range{70, 74},
		Range{80, 64}, Range{90, 50}, Range{100, 40})

	mustDefine(Blue, &Range{179, 257},
		Range{20, 100}, Range{30, 86}, Range{40, 80}, Range{50, 74}, Range{60, 60},
		Range{70, 52}, Range{80, 44}, Range{90, 39}, Range{100, 35})

	mustDefine(Purple, &Range{258, 282},
		Range{20, 100}, Range{30, 87}, Range{40, 79}, Range{50, 70}, Range{60, 65},
		Range{70, 59}, Range{80, 52}, Range{90, 45}, Range{100, 42})

	mustDefine(Pink, &Range{283, 334},
		Range{20, 100}, Range{30, 90}, Range{40, 86}, Range{60, 84}, Range{80, 80},
		Range{90, 75}, Range{100, 73})

	return t
})
