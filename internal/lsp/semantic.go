package lsp

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/swatch/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// Semantic token types, indexed by position.
var semanticTokenTypes = []string{
	"keyword",    // 0: block names (meta, family, seed, random)
	"property",   // 1: attribute names and seed names after "seed."
	"namespace",  // 2: the "seed" root of a reference
	"string",     // 3: hex color literals
	"function",   // 4: color functions
	"number",     // 5: numeric literals
	"enumMember", // 6: family and random set labels
}

// Semantic token modifiers (bit flags)
var semanticTokenModifiers = []string{
	"declaration", // bit 0: defining a new symbol
}

const modDeclaration uint32 = 1

var tokenTypeIndices = func() map[string]uint32 {
	m := make(map[string]uint32, len(semanticTokenTypes))
	for i, t := range semanticTokenTypes {
		m[t] = uint32(i)
	}
	return m
}()

// semanticLegend describes the token encoding to the client.
func semanticLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     semanticTokenTypes,
		TokenModifiers: semanticTokenModifiers,
	}
}

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based character offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

func tokenAt(r hcl.Range, length int, typ string, mods uint32) SemanticToken {
	return SemanticToken{
		Line:      uint32(r.Start.Line - 1),
		StartChar: uint32(r.Start.Column - 1),
		Length:    uint32(length),
		Type:      tokenTypeIndices[typ],
		Modifiers: mods,
	}
}

// encodeTokens converts tokens to LSP format (5 integers per token)
// using delta encoding for line numbers and character positions.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for the entire document content.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	var tokens []SemanticToken
	for _, block := range body.Blocks {
		tokens = append(tokens, tokenAt(block.TypeRange, len(block.Type), "keyword", 0))
		for i, label := range block.Labels {
			// LabelRanges include the quotes
			r := block.LabelRanges[i]
			r.Start.Column++
			tokens = append(tokens, tokenAt(r, len(label), "enumMember", modDeclaration))
		}
		tokens = extractTokensFromBody(block.Body, tokens)
	}

	return encodeTokens(tokens)
}

// extractTokensFromBody extracts attribute name and expression tokens.
func extractTokensFromBody(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for name, attr := range body.Attributes {
		tokens = append(tokens, tokenAt(attr.NameRange, len(name), "property", modDeclaration))
		tokens = extractTokensFromExpr(attr.Expr, tokens)
	}
	return tokens
}

// extractTokensFromExpr extracts tokens from an HCL expression.
func extractTokensFromExpr(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type() == cty.Number {
			tokens = append(tokens, tokenAt(e.SrcRange, e.SrcRange.End.Column-e.SrcRange.Start.Column, "number", 0))
		}
	case *hclsyntax.TemplateExpr:
		if e.IsStringLiteral() {
			tokens = extractHexLiteral(e, tokens)
		}
	case *hclsyntax.ScopeTraversalExpr:
		tokens = extractTokensFromTraversal(e.Traversal, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = append(tokens, tokenAt(e.NameRange, len(e.Name), "function", 0))
		for _, arg := range e.Args {
			tokens = extractTokensFromExpr(arg, tokens)
		}
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			tokens = extractTokensFromExpr(item, tokens)
		}
	case *hclsyntax.UnaryOpExpr:
		tokens = extractTokensFromExpr(e.Val, tokens)
	}
	return tokens
}

// extractHexLiteral marks quoted "#RRGGBB" or "#AARRGGBB" strings.
func extractHexLiteral(expr *hclsyntax.TemplateExpr, tokens []SemanticToken) []SemanticToken {
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.Type() != cty.String {
		return tokens
	}
	s := val.AsString()
	if _, err := color.ParseHex(s); err != nil {
		return tokens
	}
	r := expr.SrcRange
	r.Start.Column++ // skip the opening quote
	return append(tokens, tokenAt(r, len(s), "string", 0))
}

// extractTokensFromTraversal handles seed references like seed.primary.
func extractTokensFromTraversal(traversal hcl.Traversal, tokens []SemanticToken) []SemanticToken {
	if len(traversal) == 0 {
		return tokens
	}

	root, ok := traversal[0].(hcl.TraverseRoot)
	if !ok || !referenceRoots[root.Name] {
		return tokens
	}
	tokens = append(tokens, tokenAt(root.SrcRange, len(root.Name), "namespace", 0))

	for _, step := range traversal[1:] {
		if attr, ok := step.(hcl.TraverseAttr); ok {
			// SrcRange covers the leading dot
			r := attr.SrcRange
			r.Start.Column = r.End.Column - len(attr.Name)
			tokens = append(tokens, tokenAt(r, len(attr.Name), "property", 0))
		}
	}

	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
