package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/funcs"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a packed color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R()) / 255.0,
		Green: float32(c.G()) / 255.0,
		Blue:  float32(c.B()) / 255.0,
		Alpha: float32(c.A()) / 255.0,
	}
}

// colorFromLSP converts a protocol.Color back to a packed color.
func colorFromLSP(c protocol.Color) color.Color {
	channel := func(v float32) uint8 {
		return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return color.ARGB(channel(c.Alpha), channel(c.Red), channel(c.Green), channel(c.Blue))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation produces color presentation options for a given color and range.
// Hex literals get a TextEdit replacing the old value. Seed references and
// function calls are left alone; they get an empty slice.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	hexStr := funcs.Encode(colorFromLSP(params.Color))

	// Extract the text at the given range to determine if this is a hex literal or a reference
	text := extractText(content, params.Range)

	if strings.HasPrefix(text, funcs.SeedVar+".") {
		return []protocol.ColorPresentation{}
	}

	if strings.HasPrefix(text, "\"#") || strings.HasPrefix(text, "#") {
		newText := hexStr
		if strings.HasPrefix(text, "\"") {
			newText = "\"" + hexStr + "\""
		}

		return []protocol.ColorPresentation{
			{
				Label: hexStr,
				TextEdit: &protocol.TextEdit{
					Range:   params.Range,
					NewText: newText,
				},
			},
		}
	}

	return []protocol.ColorPresentation{}
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
