package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/jsvensson/swatch/material"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	clip := func(line string, ch uint32) int {
		return min(int(ch), len(line))
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := clip(line, r.Start.Character)
		endChar := max(clip(line, r.End.Character), startChar)
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		switch i {
		case startLine:
			parts = append(parts, line[clip(line, r.Start.Character):])
		case endLine:
			parts = append(parts, line[:clip(line, r.End.Character)])
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// hover produces a Hover response for the given cursor position.
// Seed expressions show the resolved color, its brightness, text color and
// material tones. Function names show their signature.
// Returns nil if there is nothing to show at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	if h := functionHover(content, pos); h != nil {
		return h
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		var md strings.Builder
		if cl.IsRef {
			fmt.Fprintf(&md, "**%s** → ", extractText(content, cl.Range))
		}
		fmt.Fprintf(&md, "**%s.%s**\n\n", funcs.SeedVar, cl.Name)
		md.WriteString(describeColor(cl.Color))

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md.String(),
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// describeColor renders hex, rgb, brightness, text color and the tone table.
func describeColor(c color.Color) string {
	var md strings.Builder
	fmt.Fprintf(&md, "`%s` · `%s`\n\n", funcs.Encode(c), c.RGB())
	fmt.Fprintf(&md, "brightness %.0f · text `%s`\n\n", color.Brightness(c), color.Foreground(c, color.PreferNone).Hex())

	tones := material.New(c)
	steps := material.Steps()
	for _, s := range steps {
		fmt.Fprintf(&md, "| %s ", s)
	}
	md.WriteString("|\n")
	md.WriteString(strings.Repeat("|---", len(steps)) + "|\n")
	for _, s := range steps {
		tc, _ := tones.Tone(s)
		fmt.Fprintf(&md, "| `%s` ", tc.Hex())
	}
	md.WriteString("|")
	return md.String()
}

// functionHover shows the signature of the function name under the cursor.
func functionHover(content string, pos protocol.Position) *protocol.Hover {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col >= len(line) || !isWordChar(line[col]) {
		return nil
	}

	start, end := col, col
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	if end >= len(line) || line[end] != '(' {
		return nil
	}

	name := line[start:end]
	sig, ok := funcs.Signature(name)
	if !ok {
		return nil
	}

	rng := protocol.Range{
		Start: protocol.Position{Line: pos.Line, Character: uint32(start)},
		End:   protocol.Position{Line: pos.Line, Character: uint32(end)},
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("`%s`\n\n%s", sig, funcs.Description(name)),
		},
		Range: &rng,
	}
}

func isWordChar(b byte) bool {
	return isIdentChar(b) && b != '.'
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
