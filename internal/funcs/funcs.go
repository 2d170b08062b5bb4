// Package funcs provides the HCL evaluation context shared by the palette
// parser and the language server: seed variables plus color functions.
package funcs

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/material"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// SeedVar is the root variable seeds are exposed under.
const SeedVar = "seed"

// Encode renders c the way palette expressions see it: #RRGGBB for opaque
// colors, #AARRGGBB otherwise.
func Encode(c color.Color) string {
	if c.A() == 0xFF {
		return c.Hex()
	}
	return c.HexAlpha()
}

// ResolveColor extracts a color from an evaluated expression.
func ResolveColor(val cty.Value) (color.Color, error) {
	if val.IsNull() {
		return 0, fmt.Errorf("expected a color, got null")
	}
	if !val.IsKnown() {
		return 0, fmt.Errorf("expected a color, got an unknown value")
	}
	if val.Type() != cty.String {
		return 0, fmt.Errorf("expected a color string, got %s", val.Type().FriendlyName())
	}
	return color.ParseHex(val.AsString())
}

// SeedsToCty converts resolved seeds into the object bound to "seed".
func SeedsToCty(seeds map[string]color.Color) cty.Value {
	if len(seeds) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(seeds))
	for name, c := range seeds {
		vals[name] = cty.StringVal(Encode(c))
	}
	return cty.ObjectVal(vals)
}

// BuildEvalContext creates an evaluation context exposing seeds and every
// color function.
func BuildEvalContext(seeds map[string]color.Color) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			SeedVar: SeedsToCty(seeds),
		},
		Functions: Functions(),
	}
}

// OrderedAttributes returns the body's attributes in source order.
func OrderedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// Functions returns the color functions available in palette expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"brighten":   scaleFunc("Brightens a color by dividing each channel by factor", color.Brighten),
		"darken":     scaleFunc("Darkens a color by multiplying each channel by factor", color.Darken),
		"lighten":    scaleFunc("Raises HSL lightness by amount (0.0 to 1.0)", color.Lighten),
		"shade":      scaleFunc("Lowers HSL lightness by amount (0.0 to 1.0)", color.Shade),
		"complement": complementFunc(),
		"foreground": foregroundFunc(),
		"tone":       toneFunc(),
		"hsv":        hsvFunc(),
		"hsl":        hslFunc(),
		"named":      namedFunc(),
	}
}

// Names lists the function names in alphabetical order.
func Names() []string {
	fns := Functions()
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signature returns a short usage string for a function name.
func Signature(name string) (string, bool) {
	fn, ok := Functions()[name]
	if !ok {
		return "", false
	}
	params := fn.Params()
	sig := name + "("
	for i, p := range params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Name
	}
	return sig + ")", true
}

// Description returns the function's description.
func Description(name string) string {
	fn, ok := Functions()[name]
	if !ok {
		return ""
	}
	return fn.Description()
}

func float(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

func parseArg(v cty.Value) (color.Color, error) {
	return color.ParseHex(v.AsString())
}

func colorParam() function.Parameter {
	return function.Parameter{Name: "color", Type: cty.String}
}

func scaleFunc(desc string, op func(color.Model, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			colorParam(),
			{Name: "factor", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(Encode(op(c, float(args[1])))), nil
		},
	})
}

func complementFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Inverts the red, green and blue channels",
		Params:      []function.Parameter{colorParam()},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(Encode(color.Complement(c))), nil
		},
	})
}

func foregroundFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Black or white text color for a background (preference: none, black, white)",
		Params: []function.Parameter{
			colorParam(),
			{Name: "preference", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			pref, err := color.ParsePreference(args[1].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(Encode(color.Foreground(c, pref))), nil
		},
	})
}

func toneFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Material tone of a seed color (100, 300, 500, 700 or 900)",
		Params: []function.Parameter{
			colorParam(),
			{Name: "step", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := parseArg(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			var step int
			if err := gocty.FromCtyValue(args[1], &step); err != nil {
				return cty.NilVal, fmt.Errorf("%w: %s", material.ErrUnknownStep, err)
			}
			tc, err := material.New(c).Tone(material.Step(step))
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(Encode(tc)), nil
		},
	})
}

func hsvFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Color from hue (degrees), saturation and value (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "hue", Type: cty.Number},
			{Name: "saturation", Type: cty.Number},
			{Name: "value", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c := color.HSV{H: float(args[0]), S: float(args[1]), V: float(args[2])}
			return cty.StringVal(Encode(c.Packed())), nil
		},
	})
}

func hslFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Color from hue (degrees), saturation and lightness (0.0 to 1.0)",
		Params: []function.Parameter{
			{Name: "hue", Type: cty.Number},
			{Name: "saturation", Type: cty.Number},
			{Name: "lightness", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c := color.HSL{H: float(args[0]), S: float(args[1]), L: float(args[2])}
			return cty.StringVal(Encode(c.Packed())), nil
		},
	})
}

func namedFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Color from a CSS/SVG color name",
		Params:      []function.Parameter{{Name: "name", Type: cty.String}},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.Named(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(Encode(c)), nil
		},
	})
}
