package lsp

import (
	"regexp"
	"strings"

	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/jsvensson/swatch/internal/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// referenceRoots are the variables expressions can traverse.
var referenceRoots = map[string]bool{
	funcs.SeedVar: true,
}

// familyAttr matches `family = "name"` inside a random block.
var familyAttr = regexp.MustCompile(`^\s*family\s*=\s*"([^"]*)"`)

// blockRefAtCursor extracts the reference path up to the cursor position.
// If cursor is on "seed" in "seed.primary", it returns "seed".
// If cursor is on "primary" in "seed.primary", it returns "seed.primary".
// Returns "" if the cursor is not on a reference.
func blockRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	// Find the end of the current word (letters, digits, underscores, dots)
	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}

	// Find the start of the current word (letters, digits, underscores, dots)
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	word := line[start:end]

	parts := strings.Split(word, ".")
	if !referenceRoots[parts[0]] {
		return ""
	}

	// If cursor is on just the root name, check if followed by dot
	if len(parts) == 1 {
		if end < len(line) && line[end] == '.' {
			return parts[0]
		}
		return ""
	}

	// Return path up to the segment under the cursor
	cursorInWord := col - start
	var resultParts []string
	currentPos := 0

	for _, part := range parts {
		if currentPos <= cursorInWord {
			resultParts = append(resultParts, part)
		}
		currentPos += len(part) + 1 // +1 for dot
	}

	return strings.Join(resultParts, ".")
}

// familyRefAtCursor returns the family symbol named by a `family = "..."`
// attribute when the cursor is inside its quoted value.
func familyRefAtCursor(line string, character uint32) string {
	loc := familyAttr.FindStringSubmatchIndex(line)
	if loc == nil {
		return ""
	}
	col := int(character)
	if col < loc[2] || col > loc[3] {
		return ""
	}
	return "family." + parser.FamilyName(line[loc[2]:loc[3]])
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

// definition returns the definition location for a seed reference or family
// name at the given cursor position. Returns nil if the cursor is not on a
// reference or if the symbol is not found.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	lineIdx := int(pos.Line)
	if lineIdx >= len(lines) {
		return nil
	}

	line := lines[lineIdx]
	ref := blockRefAtCursor(line, pos.Character)
	if ref == "" {
		ref = familyRefAtCursor(line, pos.Character)
	}
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}
