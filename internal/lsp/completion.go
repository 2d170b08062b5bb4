package lsp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/jsvensson/swatch/randomcolor"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot   blockContext = iota
	contextMeta                // inside meta {}
	contextFamily              // inside family "name" {}
	contextSeed                // inside seed {}
	contextRandom              // inside random "name" {}
)

// blockAttributes are the valid attributes per block.
var blockAttributes = map[blockContext][]string{
	contextMeta:   {"name", "author", "description"},
	contextFamily: {"hue", "bounds"},
	contextRandom: {"family", "count", "luminosity", "saturation", "seed"},
}

// topLevelBlocks are the valid top-level block names with their snippets.
var topLevelBlocks = []struct {
	name    string
	snippet string
}{
	{"meta", "meta {\n  name = \"$1\"\n}"},
	{"family", "family \"${1:name}\" {\n  hue    = [${2:0}, ${3:359}]\n  bounds = [[${4:20}, ${5:100}], [${6:100}, ${7:50}]]\n}"},
	{"seed", "seed {\n  $0\n}"},
	{"random", "random \"${1:name}\" {\n  count = ${2:5}\n  $0\n}"},
}

// enumValue matches an enum attribute whose value is being typed.
var enumValue = regexp.MustCompile(`^\s*(family|luminosity|saturation)\s*=\s*("?)[\w-]*$`)

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Check for seed path completion: "seed." or "seed.pri"
	if seedItems := trySeedCompletion(result, textBeforeCursor); seedItems != nil {
		return seedItems
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	if ctx == contextRandom {
		if items := enumCompletions(result, textBeforeCursor); items != nil {
			return items
		}
	}

	// Check for value position (after "=") and offer functions and seeds
	if isValuePosition(textBeforeCursor) {
		if ctx == contextSeed {
			return valueCompletions()
		}
		return nil
	}

	switch ctx {
	case contextMeta, contextFamily, contextRandom:
		return attributeCompletions(blockAttributes[ctx], lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// trySeedCompletion checks if the text before the cursor ends with a seed
// reference prefix and returns the resolved seeds, in source order.
func trySeedCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || len(result.SeedOrder) == 0 {
		return nil
	}

	prefix := funcs.SeedVar + "."
	idx := strings.LastIndex(textBeforeCursor, prefix)
	if idx == -1 {
		return nil
	}
	// "myseed." must not trigger
	if idx > 0 && isIdentChar(textBeforeCursor[idx-1]) {
		return nil
	}
	// Only one level deep: "seed.primary." has no children
	if strings.Contains(textBeforeCursor[idx+len(prefix):], ".") {
		return nil
	}

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(result.SeedOrder))
	for _, name := range result.SeedOrder {
		hex := funcs.Encode(result.Seeds[name])
		items = append(items, protocol.CompletionItem{
			Label:         name,
			Kind:          &kind,
			Detail:        &hex,
			Documentation: hex,
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// enumCompletions offers the accepted values of family, luminosity and
// saturation attributes in a random block.
func enumCompletions(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	m := enumValue.FindStringSubmatch(textBeforeCursor)
	if m == nil {
		return nil
	}
	attr, quoted := m[1], m[2] == "\""

	var values []string
	var kind protocol.CompletionItemKind
	switch attr {
	case "family":
		kind = protocol.CompletionItemKindEnumMember
		for _, name := range randomcolor.DefaultTable().Names() {
			values = append(values, strings.ToLower(name))
		}
		if result != nil {
			for _, name := range result.Families {
				values = append(values, strings.ToLower(name))
			}
		}
	case "luminosity":
		kind = protocol.CompletionItemKindValue
		values = randomcolor.LuminosityNames()
	case "saturation":
		kind = protocol.CompletionItemKindValue
		values = randomcolor.SaturationTypeNames()
	}

	items := make([]protocol.CompletionItem, 0, len(values))
	for _, v := range values {
		insert := v
		if !quoted {
			insert = fmt.Sprintf("%q", v)
		}
		items = append(items, protocol.CompletionItem{
			Label:      v,
			Kind:       completionKindPtr(kind),
			Detail:     strPtr(attr),
			InsertText: strPtr(insert),
		})
	}
	return items
}

// valueCompletions returns completion items for a seed value position:
// function snippets and a seed reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	fns := funcs.Functions()

	var items []protocol.CompletionItem
	for _, name := range funcs.Names() {
		params := fns[name].Params()
		args := make([]string, len(params))
		for i, p := range params {
			args[i] = fmt.Sprintf("${%d:%s}", i+1, p.Name)
		}
		snippet := name + "(" + strings.Join(args, ", ") + ")"
		sig, _ := funcs.Signature(name)

		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(sig),
			Documentation:    funcs.Description(name),
			InsertText:       strPtr(snippet),
			InsertTextFormat: &snippetFormat,
		})
	}

	seedSnippet := funcs.SeedVar + "."
	items = append(items, protocol.CompletionItem{
		Label:      funcs.SeedVar,
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("seed reference"),
		InsertText: &seedSnippet,
	})

	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: the block name is the first word on the line
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				name := strings.TrimSuffix(parts[0], "{")
				for range opens {
					stack = append(stack, name)
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "meta":
		return contextMeta
	case "family":
		return contextFamily
	case "seed":
		return contextSeed
	case "random":
		return contextRandom
	default:
		return contextRoot
	}
}

// attributeCompletions returns attribute name completions, excluding names
// already defined in the block surrounding the cursor.
func attributeCompletions(names []string, lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, b := range topLevelBlocks {
		snippet := b.snippet
		items = append(items, protocol.CompletionItem{
			Label:            b.name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	items := complete(s.getResult(uri), content, params.Position)
	return items, nil
}
