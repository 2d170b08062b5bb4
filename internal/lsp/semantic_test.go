package lsp

import (
	"reflect"
	"testing"
)

func TestEncodeTokens_Empty(t *testing.T) {
	result := encodeTokens([]SemanticToken{})
	expected := []uint32{}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens([]) = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SingleToken(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 2, StartChar: 5, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	expected := []uint32{2, 5, 7, 0, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensSameLine(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 4, Type: 0, Modifiers: 0}, // "seed"
		{Line: 0, StartChar: 8, Length: 7, Type: 1, Modifiers: 1}, // "primary"
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=0, deltaStart=8-0=8
	expected := []uint32{0, 0, 4, 0, 0, 0, 8, 7, 1, 1}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensDifferentLines(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0}, // line 0
		{Line: 2, StartChar: 2, Length: 4, Type: 1, Modifiers: 0}, // line 2
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=2-0=2, deltaStart=2 (new line, not relative)
	expected := []uint32{0, 0, 7, 0, 0, 2, 2, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SortsTokens(t *testing.T) {
	// Tokens in wrong order
	tokens := []SemanticToken{
		{Line: 1, StartChar: 0, Length: 4, Type: 1, Modifiers: 0},
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	// Should be sorted: line 0 first, then line 1
	expected := []uint32{0, 0, 7, 0, 0, 1, 0, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestSemanticTokensFull(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{
			name:    "empty",
			content: "",
			want:    []uint32{},
		},
		{
			name:    "parse error",
			content: "seed {\n  a = \n",
			want:    []uint32{},
		},
		{
			name:    "hex literal",
			content: "seed {\n  a = \"#3F51B5\"\n}\n",
			want: []uint32{
				0, 0, 4, 0, 0, // seed
				1, 2, 1, 1, 1, // a
				0, 5, 7, 3, 0, // #3F51B5
			},
		},
		{
			name:    "plain string is not a color",
			content: "meta {\n  name = \"Indigo\"\n}\n",
			want: []uint32{
				0, 0, 4, 0, 0, // meta
				1, 2, 4, 1, 1, // name
			},
		},
		{
			name:    "function with reference and number",
			content: "seed {\n  b = darken(seed.a, 0.5)\n}\n",
			want: []uint32{
				0, 0, 4, 0, 0, // seed
				1, 2, 1, 1, 1, // b
				0, 4, 6, 4, 0, // darken
				0, 7, 4, 2, 0, // seed
				0, 5, 1, 1, 0, // a
				0, 3, 3, 5, 0, // 0.5
			},
		},
		{
			name:    "labeled block",
			content: "random \"accents\" {\n  count = 5\n}\n",
			want: []uint32{
				0, 0, 6, 0, 0, // random
				0, 8, 7, 6, 1, // accents
				1, 2, 5, 1, 1, // count
				0, 8, 1, 5, 0, // 5
			},
		},
		{
			name:    "unknown root is not a reference",
			content: "seed {\n  b = other.a\n}\n",
			want: []uint32{
				0, 0, 4, 0, 0, // seed
				1, 2, 1, 1, 1, // b
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := semanticTokensFull(tt.content); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("semanticTokensFull() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSemanticTokensFull_CompletePalette(t *testing.T) {
	result := semanticTokensFull(validPalette)

	if len(result)%5 != 0 {
		t.Fatalf("semanticTokensFull() returned %d integers, not a multiple of 5", len(result))
	}

	counts := make(map[uint32]int)
	for i := 3; i < len(result); i += 5 {
		counts[result[i]]++
	}

	// meta, family, seed, random
	if got := counts[tokenTypeIndices["keyword"]]; got != 4 {
		t.Errorf("got %d keyword tokens, want 4", got)
	}
	// complement and named
	if got := counts[tokenTypeIndices["function"]]; got != 2 {
		t.Errorf("got %d function tokens, want 2", got)
	}
	// seed.primary twice
	if got := counts[tokenTypeIndices["namespace"]]; got != 2 {
		t.Errorf("got %d namespace tokens, want 2", got)
	}
	// teal and accents
	if got := counts[tokenTypeIndices["enumMember"]]; got != 2 {
		t.Errorf("got %d enumMember tokens, want 2", got)
	}
}

func TestSemanticLegend(t *testing.T) {
	legend := semanticLegend()
	if len(legend.TokenTypes) != len(tokenTypeIndices) {
		t.Errorf("legend has %d types, index has %d", len(legend.TokenTypes), len(tokenTypeIndices))
	}
	for name, idx := range tokenTypeIndices {
		if legend.TokenTypes[idx] != name {
			t.Errorf("TokenTypes[%d] = %q, want %q", idx, legend.TokenTypes[idx], name)
		}
	}
}
