package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/jsvensson/swatch/randomcolor"
)

// ParseResult holds the raw parsed palette data.
type ParseResult struct {
	Meta     Meta
	Families []Family
	Seeds    []Seed
	Random   []RandomSet
}

// Meta holds palette metadata.
type Meta struct {
	Name        string `hcl:"name,optional"`
	Author      string `hcl:"author,optional"`
	Description string `hcl:"description,optional"`
}

// Family is a custom color family declared with a family block.
type Family struct {
	Name   string
	Hue    *randomcolor.Range
	Bounds []randomcolor.Range
}

// Seed is a named color from the seed block.
type Seed struct {
	Name  string
	Color color.Color
}

// RandomSet describes a random block: Count samples drawn with the given
// modifiers. Seed is nil when the set should differ on every load.
type RandomSet struct {
	Name       string
	Family     string
	Count      int
	Luminosity randomcolor.Luminosity
	Saturation randomcolor.SaturationType
	Seed       *uint64
}

// FamilyBlock decodes a family block.
type FamilyBlock struct {
	Name   string  `hcl:"name,label"`
	Hue    []int   `hcl:"hue,optional"`
	Bounds [][]int `hcl:"bounds"`
}

// SeedBlock keeps the seed body for source-ordered evaluation.
type SeedBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RandomBlock decodes a random block.
type RandomBlock struct {
	Name       string `hcl:"name,label"`
	Family     string `hcl:"family,optional"`
	Count      *int   `hcl:"count,optional"`
	Luminosity string `hcl:"luminosity,optional"`
	Saturation string `hcl:"saturation,optional"`
	Seed       *int64 `hcl:"seed,optional"`
}

// RawConfig is the top-level file layout.
type RawConfig struct {
	Meta     *Meta         `hcl:"meta,block"`
	Families []FamilyBlock `hcl:"family,block"`
	Seed     *SeedBlock    `hcl:"seed,block"`
	Random   []RandomBlock `hcl:"random,block"`
}

// Parse reads and parses a palette file.
func Parse(path string) (*ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return ParseSource(src, path)
}

// ParseSource parses palette content held in memory.
func ParseSource(src []byte, filename string) (*ParseResult, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %s", diags.Error())
	}

	result := &ParseResult{}
	if raw.Meta != nil {
		result.Meta = *raw.Meta
	}

	declared := make(map[string]bool, len(raw.Families))
	for _, fb := range raw.Families {
		fam, err := DecodeFamily(fb)
		if err != nil {
			return nil, fmt.Errorf("family %q: %w", fb.Name, err)
		}
		if declared[fam.Name] {
			return nil, fmt.Errorf("family %q declared more than once", fb.Name)
		}
		declared[fam.Name] = true
		result.Families = append(result.Families, fam)
	}

	if raw.Seed == nil {
		return nil, fmt.Errorf("no seed block found")
	}
	seeds, err := parseSeeds(raw.Seed.Entries)
	if err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	result.Seeds = seeds

	names := make(map[string]bool, len(raw.Random))
	for _, rb := range raw.Random {
		if names[rb.Name] {
			return nil, fmt.Errorf("random set %q declared more than once", rb.Name)
		}
		names[rb.Name] = true

		set, err := DecodeRandom(rb, declared)
		if err != nil {
			return nil, fmt.Errorf("random %q: %w", rb.Name, err)
		}
		result.Random = append(result.Random, set)
	}

	return result, nil
}

// FamilyName normalizes a family name the way tables store them.
func FamilyName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// DecodeFamily validates a family block and normalizes its name.
func DecodeFamily(fb FamilyBlock) (Family, error) {
	fam := Family{Name: FamilyName(fb.Name)}
	if fam.Name == "" {
		return Family{}, fmt.Errorf("name must not be empty")
	}

	if fb.Hue != nil {
		if len(fb.Hue) != 2 {
			return Family{}, fmt.Errorf("hue must be [start, end], got %d values", len(fb.Hue))
		}
		if fb.Hue[0] > fb.Hue[1] {
			return Family{}, fmt.Errorf("hue start %d is greater than end %d", fb.Hue[0], fb.Hue[1])
		}
		fam.Hue = &randomcolor.Range{Start: fb.Hue[0], End: fb.Hue[1]}
	}

	if len(fb.Bounds) == 0 {
		return Family{}, fmt.Errorf("bounds must not be empty")
	}
	for i, pair := range fb.Bounds {
		if len(pair) != 2 {
			return Family{}, fmt.Errorf("bounds[%d] must be [saturation, brightness], got %d values", i, len(pair))
		}
		for _, v := range pair {
			if v < 0 || v > 100 {
				return Family{}, fmt.Errorf("bounds[%d] value %d outside [0, 100]", i, v)
			}
		}
		fam.Bounds = append(fam.Bounds, randomcolor.Range{Start: pair[0], End: pair[1]})
	}
	if err := randomcolor.ValidateFamily(fam.Hue, fam.Bounds); err != nil {
		return Family{}, err
	}
	return fam, nil
}

// parseSeeds evaluates seed attributes in source order, so each seed can
// reference the ones above it.
func parseSeeds(body hcl.Body) ([]Seed, error) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("seed block is not an hclsyntax.Body")
	}
	if len(syntaxBody.Blocks) > 0 {
		return nil, fmt.Errorf("nested block %q not allowed", syntaxBody.Blocks[0].Type)
	}

	attrs := funcs.OrderedAttributes(syntaxBody)
	if len(attrs) == 0 {
		return nil, fmt.Errorf("seed block has no colors")
	}

	resolved := make(map[string]color.Color, len(attrs))
	seeds := make([]Seed, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(funcs.BuildEvalContext(resolved))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating seed.%s: %s", attr.Name, diags.Error())
		}
		c, err := funcs.ResolveColor(val)
		if err != nil {
			return nil, fmt.Errorf("seed.%s: %w", attr.Name, err)
		}
		resolved[attr.Name] = c
		seeds = append(seeds, Seed{Name: attr.Name, Color: c})
	}
	return seeds, nil
}

// DecodeRandom validates a random block. declared holds the custom family
// names visible to it.
func DecodeRandom(rb RandomBlock, declared map[string]bool) (RandomSet, error) {
	set := RandomSet{Name: rb.Name, Count: 1}

	if rb.Family != "" {
		set.Family = FamilyName(rb.Family)
		if _, ok := randomcolor.DefaultTable().Lookup(set.Family); !ok && !declared[set.Family] {
			return RandomSet{}, fmt.Errorf("unknown family %q", rb.Family)
		}
	}

	if rb.Count != nil {
		if *rb.Count <= 0 {
			return RandomSet{}, fmt.Errorf("count must be greater than 0, got %d", *rb.Count)
		}
		set.Count = *rb.Count
	}

	lum, err := randomcolor.ParseLuminosity(rb.Luminosity)
	if err != nil {
		return RandomSet{}, err
	}
	set.Luminosity = lum

	sat, err := randomcolor.ParseSaturationType(rb.Saturation)
	if err != nil {
		return RandomSet{}, err
	}
	set.Saturation = sat

	if rb.Seed != nil {
		s := uint64(*rb.Seed)
		set.Seed = &s
	}
	return set, nil
}
