package lsp

import (
	"strings"

	pformat "github.com/jsvensson/swatch/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single whole-document edit, or none when the content
// is already formatted.
func formatEdits(content string) ([]protocol.TextEdit, error) {
	formatted, err := pformat.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(len(lines) - 1), Character: uint32(len(last))},
			},
			NewText: formatted,
		},
	}, nil
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatEdits(content)
}
