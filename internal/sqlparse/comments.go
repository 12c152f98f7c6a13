package sqlparse

import "strings"

// LeadingComments returns the comment block at the top of a script, before
// the first SQL token, with comment markers removed. Scripts conventionally
// describe the table they build there.
func LeadingComments(src string) string {
	var lines []string
	rest := src
	for {
		rest = strings.TrimLeft(rest, " \t\r\n\f")
		switch {
		case strings.HasPrefix(rest, "--"):
			line, tail, _ := strings.Cut(rest[2:], "\n")
			lines = append(lines, strings.TrimSpace(line))
			rest = tail
		case strings.HasPrefix(rest, "/*"):
			body, tail, ok := strings.Cut(rest[2:], "*/")
			if !ok {
				return joinComment(lines)
			}
			for _, line := range strings.Split(body, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
				lines = append(lines, line)
			}
			rest = tail
		default:
			return joinComment(lines)
		}
	}
}

func joinComment(lines []string) string {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
