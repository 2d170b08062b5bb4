package randomcolor

import (
	"fmt"
	"strings"
)

// Luminosity biases the sampled saturation and brightness.
type Luminosity int

const (
	LuminosityAny Luminosity = iota
	Bright
	Light
	Dark
	LuminosityRandom
)

var luminosityNames = map[Luminosity]string{
	LuminosityAny:    "any",
	Bright:           "bright",
	Light:            "light",
	Dark:             "dark",
	LuminosityRandom: "random",
}

func (l Luminosity) String() string {
	if s, ok := luminosityNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Luminosity(%d)", int(l))
}

// ParseLuminosity parses "any", "bright", "light", "dark" or "random".
// The empty string is "any".
func ParseLuminosity(s string) (Luminosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LuminosityAny, nil
	}
	for l, name := range luminosityNames {
		if name == s {
			return l, nil
		}
	}
	return LuminosityAny, fmt.Errorf("%w: unknown luminosity %q (valid: %s)", ErrInvalidArgument, s, strings.Join(LuminosityNames(), ", "))
}

// LuminosityNames lists the accepted luminosity names in declaration order.
func LuminosityNames() []string {
	return []string{"any", "bright", "light", "dark", "random"}
}

// SaturationType overrides how saturation is picked.
type SaturationType int

const (
	SaturationAny SaturationType = iota
	SaturationRandom
	SaturationMonochrome
)

func (s SaturationType) String() string {
	switch s {
	case SaturationAny:
		return "any"
	case SaturationRandom:
		return "random"
	case SaturationMonochrome:
		return "monochrome"
	}
	return fmt.Sprintf("SaturationType(%d)", int(s))
}

// ParseSaturationType parses "any", "random" or "monochrome".
func ParseSaturationType(s string) (SaturationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return SaturationAny, nil
	case "random":
		return SaturationRandom, nil
	case "monochrome":
		return SaturationMonochrome, nil
	}
	return SaturationAny, fmt.Errorf("%w: unknown saturation type %q (valid: %s)", ErrInvalidArgument, s, strings.Join(SaturationTypeNames(), ", "))
}

// SaturationTypeNames lists the accepted saturation type names.
func SaturationTypeNames() []string {
	return []string{"any", "random", "monochrome"}
}

// Options selects what ColorWith samples. The zero value samples any
// family without modifiers.
type Options struct {
	// Family restricts the hue to a named family. Empty infers the family
	// from the sampled hue.
	Family         string
	Luminosity     Luminosity
	SaturationType SaturationType
}
