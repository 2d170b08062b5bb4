// Package swatch loads palette files: seed colors with their Material tones,
// custom color families, and random swatch sets drawn from them.
package swatch

import (
	"fmt"

	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/parser"
	"github.com/jsvensson/swatch/material"
	"github.com/jsvensson/swatch/randomcolor"
)

// Palette is the fully-resolved palette data, ready for template rendering.
type Palette struct {
	Meta Meta
	// Seeds holds every seed keyed by name; Order keeps source order.
	Seeds map[string]Swatch
	Order []string
	// Random holds sampled colors per random set.
	Random map[string][]color.Color
	// Families lists the custom families declared in the file.
	Families []string
}

// Meta holds palette metadata.
type Meta struct {
	Name        string
	Author      string
	Description string
}

// Swatch is a seed color with everything derived from it.
type Swatch struct {
	Name  string
	Color color.Color
	Tones material.Tones
	Text  color.Color
}

// NewSwatch derives tones and text color for c.
func NewSwatch(name string, c color.Color) Swatch {
	tones := material.New(c)
	return Swatch{
		Name:  name,
		Color: c,
		Tones: tones,
		Text:  tones.TextColor(),
	}
}

// Tone returns the tone of the swatch at step.
func (s Swatch) Tone(step material.Step) (color.Color, error) {
	return s.Tones.Tone(step)
}

// Packed returns the seed color, so a Swatch is a color.Model.
func (s Swatch) Packed() color.Color { return s.Color }

// Load parses a palette file and returns a fully-resolved Palette.
func Load(path string) (*Palette, error) {
	raw, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return resolve(raw)
}

// LoadSource resolves palette content held in memory.
func LoadSource(src []byte, filename string) (*Palette, error) {
	raw, err := parser.ParseSource(src, filename)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return resolve(raw)
}

func resolve(raw *parser.ParseResult) (*Palette, error) {
	p := &Palette{
		Meta: Meta{
			Name:        raw.Meta.Name,
			Author:      raw.Meta.Author,
			Description: raw.Meta.Description,
		},
		Seeds:  make(map[string]Swatch, len(raw.Seeds)),
		Random: make(map[string][]color.Color, len(raw.Random)),
	}

	for _, s := range raw.Seeds {
		p.Seeds[s.Name] = NewSwatch(s.Name, s.Color)
		p.Order = append(p.Order, s.Name)
	}
	for _, f := range raw.Families {
		p.Families = append(p.Families, f.Name)
	}

	var shared *randomcolor.Generator
	for _, set := range raw.Random {
		var g *randomcolor.Generator
		switch {
		case set.Seed != nil:
			var err error
			g, err = newGenerator(raw.Families, randomcolor.WithSeed(*set.Seed))
			if err != nil {
				return nil, err
			}
		case shared != nil:
			g = shared
		default:
			var err error
			shared, err = newGenerator(raw.Families)
			if err != nil {
				return nil, err
			}
			g = shared
		}

		samples, err := g.ColorsWith(randomcolor.Options{
			Family:         set.Family,
			Luminosity:     set.Luminosity,
			SaturationType: set.Saturation,
		}, set.Count)
		if err != nil {
			return nil, fmt.Errorf("random %q: %w", set.Name, err)
		}

		colors := make([]color.Color, len(samples))
		for i, hsv := range samples {
			colors[i] = hsv.Packed()
		}
		p.Random[set.Name] = colors
	}

	return p, nil
}

// newGenerator returns a generator with the given families registered on
// top of the default table.
func newGenerator(families []parser.Family, opts ...randomcolor.Option) (*randomcolor.Generator, error) {
	g := randomcolor.New(opts...)
	for _, f := range families {
		if err := g.DefineColor(f.Name, f.Hue, f.Bounds); err != nil {
			return nil, fmt.Errorf("family %q: %w", f.Name, err)
		}
	}
	return g, nil
}

// Seed returns the named seed swatch.
func (p *Palette) Seed(name string) (Swatch, bool) {
	s, ok := p.Seeds[name]
	return s, ok
}

// Swatches returns the seeds in source order.
func (p *Palette) Swatches() []Swatch {
	out := make([]Swatch, 0, len(p.Order))
	for _, name := range p.Order {
		out = append(out, p.Seeds[name])
	}
	return out
}
