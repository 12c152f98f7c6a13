package sqlparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokQuotedIdent
	tokString
	tokNumber
	tokParam
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokQuotedIdent:
		return "quoted identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokParam:
		return "parameter"
	default:
		return "operator"
	}
}

// token is a lexical unit. For quoted identifiers and strings, text holds
// the unquoted content.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// multiOps lists operators longer than one byte, longest first.
var multiOps = []string{"<=>", "<=", ">=", "<>", "!=", "==", "||", "::", "->", "=>", "<<", ">>"}

type lexer struct {
	src  string
	pos  int
	toks []token
	err  *lexError
}

// lex splits src into tokens, dropping whitespace and comments.
func lex(src string) ([]token, *lexError) {
	l := &lexer{src: src}
	for {
		l.skipSpaceAndComments()
		if l.err != nil {
			return nil, l.err
		}
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, pos: l.pos})
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

// lexError carries the byte offset so the parser can report line and column.
type lexError struct {
	pos int
	msg string
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "--"):
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.pos += end + 1
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.err = &lexError{pos: l.pos, msg: "unterminated block comment"}
				return
			}
			l.pos += end + 4
		default:
			return
		}
	}
}

func (l *lexer) emit(kind tokenKind, text string, start int) {
	l.toks = append(l.toks, token{kind: kind, text: text, pos: start})
}

func (l *lexer) next() *lexError {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '\'':
		s, err := l.quoted('\'', true)
		if err != nil {
			return err
		}
		l.emit(tokString, s, start)
	case c == '"':
		s, err := l.quoted('"', false)
		if err != nil {
			return err
		}
		l.emit(tokQuotedIdent, s, start)
	case c == '`':
		s, err := l.quoted('`', false)
		if err != nil {
			return err
		}
		l.emit(tokQuotedIdent, s, start)
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		l.number()
		l.emit(tokNumber, l.src[start:l.pos], start)
	case c == '?':
		l.pos++
		l.emit(tokParam, "?", start)
	case c == ':' && l.pos+1 < len(l.src) && isIdentStart(l.runeAt(l.pos+1)):
		l.pos++
		l.identBody()
		l.emit(tokParam, l.src[start:l.pos], start)
	case isIdentStart(l.runeAt(l.pos)) || strings.HasPrefix(l.src[l.pos:], "${"):
		if err := l.ident(); err != nil {
			return err
		}
		l.emit(tokIdent, l.src[start:l.pos], start)
	default:
		for _, op := range multiOps {
			if strings.HasPrefix(l.src[l.pos:], op) {
				l.pos += len(op)
				l.emit(tokOp, op, start)
				return nil
			}
		}
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		l.emit(tokOp, l.src[start:l.pos], start)
	}
	return nil
}

// quoted reads a quoted run starting at the opening quote. A doubled quote
// is an escaped quote; backslash escapes apply to string literals only.
func (l *lexer) quoted(q byte, backslash bool) (string, *lexError) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case backslash && c == '\\' && l.pos+1 < len(l.src):
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
		case c == q:
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == q {
				b.WriteByte(q)
				l.pos += 2
				continue
			}
			l.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	if q == '\'' {
		return "", &lexError{pos: start, msg: "unterminated string literal"}
	}
	return "", &lexError{pos: start, msg: "unterminated quoted identifier"}
}

func (l *lexer) number() {
	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		l.pos += 2
		for l.pos < len(l.src) && isHex(l.src[l.pos]) {
			l.pos++
		}
		return
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		p := l.pos + 1
		if p < len(l.src) && (l.src[p] == '+' || l.src[p] == '-') {
			p++
		}
		if p < len(l.src) && isDigit(l.src[p]) {
			l.pos = p
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	// Type suffixes such as 10L or 1.5BD are part of the literal.
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
}

// ident reads an identifier, which may embed ${...} substitution variables,
// e.g. raw_${env} or ${catalog}.
func (l *lexer) ident() *lexError {
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], "${") {
			end := strings.IndexByte(l.src[l.pos:], '}')
			if end < 0 {
				return &lexError{pos: l.pos, msg: "unterminated ${ substitution"}
			}
			l.pos += end + 1
			continue
		}
		r := l.runeAt(l.pos)
		if !isIdentPart(r) {
			return nil
		}
		l.pos += utf8.RuneLen(r)
	}
	return nil
}

func (l *lexer) identBody() {
	for l.pos < len(l.src) {
		r := l.runeAt(l.pos)
		if !isIdentPart(r) {
			return
		}
		l.pos += utf8.RuneLen(r)
	}
}

func (l *lexer) runeAt(i int) rune {
	r, _ := utf8.DecodeRuneInString(l.src[i:])
	return r
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
