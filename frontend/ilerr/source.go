package ilerr

import (
	"fmt"
	"go/token"
	"strings"
	"unicode/utf8"
)

// LineColumn converts a position into the 1-based line and column it
// points at within source. ok is false when pos does not fall inside source.
func LineColumn(source string, pos token.Pos) (line, column int, ok bool) {
	if !pos.IsValid() {
		return 0, 0, false
	}
	offset := int(pos) - 1
	line, column = 1, 1
	for i, r := range []rune(source) {
		if i == offset {
			return line, column, true
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	// pointing just past the end is allowed, so that EOF can be reported
	return line, column, offset == utf8.RuneCountInString(source)
}

// FormatWithCodeAndSource is like FormatWithCode, but it prefixes the message with the
// line and column of e and appends the offending source line with a marker underneath.
func FormatWithCodeAndSource(e IleError, source string) string {
	line, column, ok := LineColumn(source, e.Pos())
	if !ok {
		return FormatWithCode(e)
	}
	sb := &strings.Builder{}
	sb.WriteString(fmt.Sprintf("%d:%d: %s\n", line, column, FormatWithCode(e)))

	srcLine := strings.Split(source, "\n")[line-1]
	sb.WriteString("    ")
	sb.WriteString(srcLine)
	sb.WriteString("\n    ")
	sb.WriteString(strings.Repeat(" ", column-1))

	width := 1
	if endLine, endColumn, ok := LineColumn(source, e.End()); ok && endLine == line && endColumn > column {
		width = endColumn - column
	}
	sb.WriteString(strings.Repeat("^", width))
	return sb.String()
}
