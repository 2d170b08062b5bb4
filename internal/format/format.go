package format

import (
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
var hexLiteral = regexp.MustCompile(`"#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6})"`)

// Format takes palette source and returns it in canonical style:
// hclwrite.Format spacing and indentation, at most one blank line between
// items, no blank lines just inside braces, and uppercase hex color literals.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := hclwrite.Format([]byte(content))
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	collapsed = hexLiteral.ReplaceAllStringFunc(collapsed, strings.ToUpper)
	return collapsed, nil
}

// Changed reports whether Format would modify content.
func Changed(content string) (bool, error) {
	formatted, err := Format(content)
	if err != nil {
		return false, err
	}
	return formatted != content, nil
}
