package sqlparse

import (
	"fmt"
	"strings"
)

// ParseError reports a script that could not be parsed into statements.
type ParseError struct {
	Script string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Script == "" {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("parse error in script '%s' at line %d, column %d: %s", e.Script, e.Line, e.Column, e.Msg)
}

func newParseError(script, src string, pos int, msg string) *ParseError {
	if pos > len(src) {
		pos = len(src)
	}
	before := src[:pos]
	line := strings.Count(before, "\n") + 1
	col := pos - strings.LastIndexByte(before, '\n')
	return &ParseError{Script: script, Line: line, Column: col, Msg: msg}
}
