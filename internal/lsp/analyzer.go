package lsp

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/jsvensson/swatch/internal/parser"
	"github.com/jsvensson/swatch/material"
	"github.com/jsvensson/swatch/randomcolor"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagSource = "swatch"

// AnalysisResult holds all information produced by analyzing a palette file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Seeds       map[string]color.Color
	SeedOrder   []string
	Families    []string                  // custom families declared with family blocks
	Symbols     map[string]protocol.Range // "seed.primary", "family.TEAL", "random.accents" -> definition range
	Colors      []ColorLocation

	syntaxErr bool
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Name  string // seed name the expression is bound to
	Range protocol.Range
	Color color.Color
	IsRef bool // true if the expression is a seed reference (not a hex literal)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses palette content from memory and produces diagnostics, a symbol
// table, and color locations. It collects ALL errors rather than short-circuiting
// on the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Seeds:   make(map[string]color.Color),
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		result.syntaxErr = true
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var seedBlock *hclsyntax.Block
	var randomBlocks []*hclsyntax.Block
	declared := make(map[string]bool)

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			var meta parser.Meta
			result.addHCLDiags(gohcl.DecodeBody(block.Body, nil, &meta))
		case "family":
			if name, ok := result.analyzeFamily(block, declared); ok {
				declared[name] = true
				result.Families = append(result.Families, name)
			}
		case "seed":
			if seedBlock != nil {
				result.addError(block.DefRange(), "duplicate seed block")
				continue
			}
			seedBlock = block
		case "random":
			randomBlocks = append(randomBlocks, block)
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unexpected block %q (valid: meta, family, seed, random)", block.Type))
		}
	}

	if seedBlock == nil {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required seed block")
	} else {
		result.analyzeSeedBody(seedBlock)
	}

	// Random blocks may name families declared anywhere in the file.
	names := make(map[string]bool, len(randomBlocks))
	for _, block := range randomBlocks {
		result.analyzeRandom(block, declared, names)
	}

	return result
}

// inherit carries seeds and families over from the previous analysis when
// the document no longer parses, so completion keeps working mid-edit.
func (r *AnalysisResult) inherit(prev *AnalysisResult) {
	if !r.syntaxErr || prev == nil {
		return
	}
	r.Seeds = prev.Seeds
	r.SeedOrder = prev.SeedOrder
	r.Families = prev.Families
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addHCLDiags(diags hcl.Diagnostics) bool {
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
	}
	return diags.HasErrors()
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// analyzeFamily validates a family block and records its symbol. It returns
// the normalized family name when the block is valid.
func (r *AnalysisResult) analyzeFamily(block *hclsyntax.Block, declared map[string]bool) (string, bool) {
	if len(block.Labels) != 1 {
		r.addError(block.DefRange(), "family block needs exactly one name label")
		return "", false
	}

	var fb parser.FamilyBlock
	if r.addHCLDiags(gohcl.DecodeBody(block.Body, nil, &fb)) {
		return "", false
	}
	fb.Name = block.Labels[0]

	fam, err := parser.DecodeFamily(fb)
	if err != nil {
		r.addError(block.DefRange(), fmt.Sprintf("family %q: %s", fb.Name, err))
		return "", false
	}
	if declared[fam.Name] {
		r.addError(block.DefRange(), fmt.Sprintf("family %q declared more than once", fb.Name))
		return "", false
	}
	if _, builtin := randomcolor.DefaultTable().Lookup(fam.Name); builtin {
		r.addWarning(block.DefRange(), fmt.Sprintf("family %q overrides the default %s family", fb.Name, fam.Name))
	}

	r.Symbols["family."+fam.Name] = hclRangeToLSP(block.DefRange())
	return fam.Name, true
}

// analyzeSeedBody evaluates seed attributes in source order so later entries
// can reference earlier ones. Failed entries stay out of the context, which
// turns references to them into diagnostics of their own.
func (r *AnalysisResult) analyzeSeedBody(block *hclsyntax.Block) {
	for _, nested := range block.Body.Blocks {
		r.addError(nested.DefRange(), fmt.Sprintf("nested block %q not allowed in seed", nested.Type))
	}

	attrs := funcs.OrderedAttributes(block.Body)
	if len(attrs) == 0 {
		r.addError(block.DefRange(), "seed block has no colors")
		return
	}

	for _, attr := range attrs {
		symbolName := funcs.SeedVar + "." + attr.Name
		r.Symbols[symbolName] = hclRangeToLSP(attr.SrcRange)

		ctx := funcs.BuildEvalContext(r.Seeds)
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", symbolName, diags.Error()))
			continue
		}

		c, err := funcs.ResolveColor(val)
		if err != nil {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", symbolName, err.Error()))
			continue
		}

		r.Seeds[attr.Name] = c
		r.SeedOrder = append(r.SeedOrder, attr.Name)
		r.Colors = append(r.Colors, ColorLocation{
			Name:  attr.Name,
			Range: hclRangeToLSP(attr.Expr.Range()),
			Color: c,
			IsRef: isReferenceExpr(attr.Expr),
		})

		if l := c.HSL().L; material.Uneven(l) {
			r.addWarning(attr.Expr.Range(), fmt.Sprintf("%s lightness %.2f is outside [%.1f, %.1f]; tones will be uneven", symbolName, l, material.PivotLow, material.PivotHigh))
		}
	}
}

// analyzeRandom validates a random block against the default and declared
// families.
func (r *AnalysisResult) analyzeRandom(block *hclsyntax.Block, declared, names map[string]bool) {
	if len(block.Labels) != 1 {
		r.addError(block.DefRange(), "random block needs exactly one name label")
		return
	}
	name := block.Labels[0]

	if names[name] {
		r.addError(block.DefRange(), fmt.Sprintf("random set %q declared more than once", name))
		return
	}
	names[name] = true
	r.Symbols["random."+name] = hclRangeToLSP(block.DefRange())

	var rb parser.RandomBlock
	if r.addHCLDiags(gohcl.DecodeBody(block.Body, nil, &rb)) {
		return
	}
	rb.Name = name

	if _, err := parser.DecodeRandom(rb, declared); err != nil {
		r.addError(randomErrorRange(block, err), fmt.Sprintf("random %q: %s", name, err))
	}
}

// randomErrorRange points a random block error at the attribute it concerns,
// falling back to the block header.
func randomErrorRange(block *hclsyntax.Block, err error) hcl.Range {
	msg := err.Error()
	for _, key := range []string{"family", "count", "luminosity", "saturation"} {
		attr, ok := block.Body.Attributes[key]
		if ok && strings.Contains(msg, key) {
			return attr.SrcRange
		}
	}
	return block.DefRange()
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. seed.primary) rather than a literal value or function call.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
