package sqlparse

import "strings"

// SplitStatements cuts src at top-level semicolons. Semicolons inside
// strings, quoted identifiers and comments do not split. Pieces holding
// only whitespace or comments are dropped.
func SplitStatements(src string) ([]string, error) {
	toks, lerr := lex(src)
	if lerr != nil {
		return nil, newParseError("", src, lerr.pos, lerr.msg)
	}

	var out []string
	start, seen := 0, false
	for _, t := range toks {
		switch {
		case t.kind == tokEOF || isOp(t, ";"):
			if seen {
				out = append(out, strings.TrimSpace(src[start:t.pos]))
			}
			start, seen = t.pos+1, false
		default:
			seen = true
		}
	}
	return out, nil
}
