package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jsvensson/swatch"
	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/material"
	"github.com/tliron/commonlog"
)

// Engine loads and executes Go templates against a resolved Palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Targets      []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given palette, and writes output files.
func (e *Engine) Run(p *swatch.Palette) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	log := commonlog.GetLogger("swatch.engine")
	data := buildTemplateData(p)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
		log.Infof("rendered %s", filepath.Join(e.OutputDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Targets) == 0 {
		return true
	}
	return slices.Contains(e.Targets, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta     swatch.Meta
	Seeds    map[string]swatch.Swatch
	Swatches []swatch.Swatch
	Random   map[string][]color.Color
	FuncMap  template.FuncMap
}

// resolveColorPath resolves a dot-notation path to a Color.
// Supports "seed.<name>", "seed.<name>.<step>", "seed.<name>.text" and
// "random.<set>.<index>".
func resolveColorPath(path string, data templateData) (color.Color, error) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid path %q: must be block.name format", path)
	}

	block := parts[0]
	rest := parts[1:]

	switch block {
	case "seed":
		sw, ok := data.Seeds[rest[0]]
		if !ok {
			return 0, fmt.Errorf("seed not found: %s", rest[0])
		}
		switch len(rest) {
		case 1:
			return sw.Color, nil
		case 2:
			if rest[1] == "text" {
				return sw.Text, nil
			}
			step, err := material.ParseStep(rest[1])
			if err != nil {
				return 0, fmt.Errorf("%s: %w", path, err)
			}
			return sw.Tone(step)
		default:
			return 0, fmt.Errorf("seed paths must be seed.name or seed.name.step: %s", path)
		}

	case "random":
		if len(rest) != 2 {
			return 0, fmt.Errorf("random paths must be random.set.index: %s", path)
		}
		set, ok := data.Random[rest[0]]
		if !ok {
			return 0, fmt.Errorf("random set not found: %s", rest[0])
		}
		i, err := strconv.Atoi(rest[1])
		if err != nil || i < 0 || i >= len(set) {
			return 0, fmt.Errorf("random index out of range: %s (set has %d colors)", path, len(set))
		}
		return set[i], nil

	default:
		return 0, fmt.Errorf("unknown block %q (valid: seed, random)", block)
	}
}

// toColor accepts a hex literal, a path string or any color.Model.
func toColor(v any, data templateData) (color.Color, error) {
	switch c := v.(type) {
	case string:
		if strings.HasPrefix(c, "#") {
			return color.ParseHex(c)
		}
		return resolveColorPath(c, data)
	case color.Model:
		return c.Packed(), nil
	default:
		return 0, fmt.Errorf("expected color or path, got %T", v)
	}
}

func buildTemplateData(p *swatch.Palette) templateData {
	data := templateData{
		Meta:     p.Meta,
		Seeds:    p.Seeds,
		Swatches: p.Swatches(),
		Random:   p.Random,
	}

	format := func(f func(color.Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := toColor(v, data)
			if err != nil {
				return "", err
			}
			return f(c), nil
		}
	}

	scale := func(op func(color.Model, float64) color.Color) func(any, float64) (color.Color, error) {
		return func(v any, factor float64) (color.Color, error) {
			c, err := toColor(v, data)
			if err != nil {
				return 0, err
			}
			return op(c, factor), nil
		}
	}

	data.FuncMap = template.FuncMap{
		"hex":      format(color.Color.Hex),
		"hexAlpha": format(color.Color.HexAlpha),
		"hexBare":  format(color.Color.HexBare),
		"rgb":      format(color.Color.RGB),
		"color": func(v any) (color.Color, error) {
			return toColor(v, data)
		},
		"tone": func(v any, step material.Step) (color.Color, error) {
			c, err := toColor(v, data)
			if err != nil {
				return 0, err
			}
			return material.New(c).Tone(step)
		},
		"fg": func(v any, pref ...string) (color.Color, error) {
			c, err := toColor(v, data)
			if err != nil {
				return 0, err
			}
			p := color.PreferNone
			if len(pref) > 0 {
				if p, err = color.ParsePreference(pref[0]); err != nil {
					return 0, err
				}
			}
			return color.Foreground(c, p), nil
		},
		"complement": func(v any) (color.Color, error) {
			c, err := toColor(v, data)
			if err != nil {
				return 0, err
			}
			return color.Complement(c), nil
		},
		"darken":   scale(color.Darken),
		"brighten": scale(color.Brighten),
		"lighten":  scale(color.Lighten),
		"shade":    scale(color.Shade),
		"seed": func(name string) (swatch.Swatch, error) {
			sw, ok := data.Seeds[name]
			if !ok {
				return swatch.Swatch{}, fmt.Errorf("seed not found: %s", name)
			}
			return sw, nil
		},
		"random": func(name string) ([]color.Color, error) {
			set, ok := data.Random[name]
			if !ok {
				return nil, fmt.Errorf("random set not found: %s", name)
			}
			return set, nil
		},
		"steps": material.Steps,
	}

	return data
}
