package lib

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position maps the error offset to a 1-based line and column (in runes).
func (e *Error) Position() (line int, col int) {
	offset := e.Offset
	if offset > len(e.Source) {
		offset = len(e.Source)
	}
	if offset < 0 {
		offset = 0
	}
	before := e.Source[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndex(before, "\n") + 1
	col = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, col
}

// RenderError formats a parser error as a header line followed by the
// offending source line and a caret under the column. Other errors are
// returned as their plain message.
func RenderError(err error) string {
	var perr *Error
	if !errors.As(err, &perr) {
		return err.Error()
	}

	line, col := perr.Position()
	file := perr.File
	if file == "" {
		file = "<input>"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s:%d:%d: %s: %s\n", file, line, col, perr.Category, perr.Message))

	lines := strings.Split(perr.Source, "\n")
	if line-1 < len(lines) {
		gutter := fmt.Sprintf("%4d | ", line)
		sb.WriteString(gutter)
		sb.WriteString(lines[line-1])
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)-2))
		sb.WriteString("| ")
		for i, r := range []rune(lines[line-1]) {
			if i >= col-1 {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}
