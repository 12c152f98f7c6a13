package sqlparse

import (
	"fmt"
	"strings"
)

// Parse turns src into a Script. The name is used only in error messages.
func Parse(name, src string) (*Script, error) {
	toks, lerr := lex(src)
	if lerr != nil {
		return nil, newParseError(name, src, lerr.pos, lerr.msg)
	}
	p := &parser{name: name, src: src, toks: toks}
	return p.parseScript()
}

type parser struct {
	name string
	src  string
	toks []token
	pos  int
}

// stopFunc decides whether expression scanning ends at the current token.
// It is consulted only at parenthesis depth zero.
type stopFunc func(p *parser) bool

func (p *parser) peek() token { return p.peekAt(0) }

func (p *parser) peekAt(n int) token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return newParseError(p.name, p.src, t.pos, fmt.Sprintf(format, args...))
}

func (p *parser) unexpected(t token, want string) error {
	if t.kind == tokEOF {
		return p.errorf(t, "expected %s, found end of input", want)
	}
	return p.errorf(t, "expected %s, found %q", want, t.text)
}

func isKw(t token, kws ...string) bool {
	if t.kind != tokIdent {
		return false
	}
	for _, kw := range kws {
		if strings.EqualFold(t.text, kw) {
			return true
		}
	}
	return false
}

func isOp(t token, op string) bool {
	return t.kind == tokOp && t.text == op
}

func (p *parser) atKw(kws ...string) bool { return isKw(p.peek(), kws...) }
func (p *parser) atOp(op string) bool     { return isOp(p.peek(), op) }

func (p *parser) acceptKw(kws ...string) bool {
	if p.atKw(kws...) {
		p.next()
		return true
	}
	return false
}

// acceptSeq consumes the keyword sequence only if all of it is present.
func (p *parser) acceptSeq(kws ...string) bool {
	for i, kw := range kws {
		if !isKw(p.peekAt(i), kw) {
			return false
		}
	}
	p.pos += len(kws)
	return true
}

func (p *parser) acceptOp(op string) bool {
	if p.atOp(op) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expectKw(kw string) error {
	if !p.acceptKw(kw) {
		return p.unexpected(p.peek(), kw)
	}
	return nil
}

func (p *parser) expectOp(op string) error {
	if !p.acceptOp(op) {
		return p.unexpected(p.peek(), fmt.Sprintf("'%s'", op))
	}
	return nil
}

func (p *parser) atStatementEnd() bool {
	t := p.peek()
	return t.kind == tokEOF || isOp(t, ";")
}

// queryAhead reports whether a query starts at offset n, looking through any
// number of opening parentheses.
func (p *parser) queryAhead(n int) bool {
	for isOp(p.peekAt(n), "(") {
		n++
	}
	return isKw(p.peekAt(n), "SELECT", "WITH", "VALUES")
}

func (p *parser) parseScript() (*Script, error) {
	s := &Script{}
	for {
		for p.acceptOp(";") {
		}
		if p.peek().kind == tokEOF {
			return s, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		s.Statements = append(s.Statements, stmt)
		if !p.atStatementEnd() {
			return nil, p.unexpected(p.peek(), "';' or end of input")
		}
	}
}

func (p *parser) parseStatement() (Statement, error) {
	t := p.peek()
	switch {
	case isKw(t, "SELECT", "VALUES", "TABLE") || (isOp(t, "(") && p.queryAhead(0)):
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		return &QueryStmt{Query: q}, nil
	case isKw(t, "WITH"):
		w, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		if p.atKw("INSERT") {
			return p.parseInsert(w)
		}
		q, err := p.parseQueryAfterWith(w)
		if err != nil {
			return nil, err
		}
		return &QueryStmt{Query: q}, nil
	case isKw(t, "INSERT"):
		return p.parseInsert(nil)
	case isKw(t, "CREATE"):
		return p.parseCreate()
	case isKw(t, "MERGE"):
		return p.parseMerge()
	case isKw(t, "UPDATE"):
		return p.parseUpdate()
	case isKw(t, "DELETE"):
		return p.parseDelete()
	case isKw(t, "EXPLAIN"):
		p.next()
		p.acceptKw("EXTENDED", "CODEGEN", "COST", "FORMATTED", "ANALYZE")
		return p.parseStatement()
	default:
		return p.parseCommand()
	}
}

func (p *parser) parseCommand() (Statement, error) {
	kw := p.next()
	body, err := p.scanExpr(nil)
	if err != nil {
		return nil, err
	}
	return &CommandStmt{Keyword: strings.ToUpper(kw.text), Body: body}, nil
}

// scanExpr skips an expression at token level, descending into parentheses
// and parsing any subquery it finds. It ends before a stop token, an
// unmatched ')', a ';' or end of input.
func (p *parser) scanExpr(stop stopFunc) (*Expr, error) {
	var e *Expr
	for {
		t := p.peek()
		if t.kind == tokEOF || isOp(t, ";") || isOp(t, ")") {
			return e, nil
		}
		if stop != nil && stop(p) {
			return e, nil
		}
		if !isOp(t, "(") {
			p.next()
			continue
		}
		inner, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		e = e.add(inner)
	}
}

// parseGroup consumes a parenthesized group. A group that holds a query is
// parsed as a subquery; anything else is scanned for nested subqueries.
func (p *parser) parseGroup() (*Expr, error) {
	open := p.next()
	if p.queryAhead(0) {
		start := p.pos
		q, err := p.parseQuery()
		if err == nil && p.acceptOp(")") {
			return &Expr{Subqueries: []*Query{q}}, nil
		}
		if !isOp(p.toks[start], "(") {
			if err == nil {
				err = p.unexpected(p.peek(), "')'")
			}
			return nil, err
		}
		// ((SELECT ...) * 2) is an expression around a subquery.
		p.pos = start
	}
	inner, err := p.scanExpr(nil)
	if err != nil {
		return nil, err
	}
	if !p.acceptOp(")") {
		return nil, p.errorf(open, "unbalanced '('")
	}
	if inner == nil {
		inner = &Expr{}
	}
	return inner, nil
}

func (p *parser) parseWith() (*WithClause, error) {
	if err := p.expectKw("WITH"); err != nil {
		return nil, err
	}
	w := &WithClause{Recursive: p.acceptKw("RECURSIVE")}
	for {
		name := p.next()
		if name.kind != tokIdent && name.kind != tokQuotedIdent {
			return nil, p.unexpected(name, "CTE name")
		}
		if p.atOp("(") {
			if _, err := p.parseGroup(); err != nil {
				return nil, err
			}
		}
		if err := p.expectKw("AS"); err != nil {
			return nil, err
		}
		p.acceptKw("NOT")
		p.acceptKw("MATERIALIZED")
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		w.CTEs = append(w.CTEs, &CTE{Name: name.text, Query: q})
		if !p.acceptOp(",") {
			return w, nil
		}
	}
}

func (p *parser) parseQuery() (*Query, error) {
	var w *WithClause
	if p.atKw("WITH") {
		var err error
		if w, err = p.parseWith(); err != nil {
			return nil, err
		}
	}
	return p.parseQueryAfterWith(w)
}

func (p *parser) parseQueryAfterWith(w *WithClause) (*Query, error) {
	body, err := p.parseSetExpr()
	if err != nil {
		return nil, err
	}
	q := &Query{With: w, Body: body}
	for {
		switch {
		case p.atKw("ORDER", "SORT", "CLUSTER", "DISTRIBUTE") && isKw(p.peekAt(1), "BY"):
			p.pos += 2
		case p.atKw("LIMIT", "OFFSET", "FETCH"):
			p.next()
		default:
			return q, nil
		}
		tail, err := p.scanExpr(atClauseEnd)
		if err != nil {
			return nil, err
		}
		q.Tail = q.Tail.add(tail)
	}
}

func (p *parser) parseSetExpr() (QueryBody, error) {
	left, err := p.parseQueryPrimary()
	if err != nil {
		return nil, err
	}
	for p.atKw("UNION", "INTERSECT", "EXCEPT", "MINUS") {
		op := strings.ToUpper(p.next().text)
		all := p.acceptKw("ALL")
		if !all {
			p.acceptKw("DISTINCT")
		}
		p.acceptSeq("BY", "NAME")
		right, err := p.parseQueryPrimary()
		if err != nil {
			return nil, err
		}
		left = &SetOp{Op: op, All: all, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseQueryPrimary() (QueryBody, error) {
	t := p.peek()
	switch {
	case isKw(t, "SELECT"):
		return p.parseSelectCore()
	case isKw(t, "VALUES"):
		return p.parseValues()
	case isKw(t, "TABLE"):
		p.next()
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &TableQuery{Table: name}, nil
	case isOp(t, "("):
		p.next()
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &ParenQuery{Query: q}, nil
	default:
		return nil, p.unexpected(t, "SELECT, VALUES or a parenthesized query")
	}
}

func (p *parser) parseSelectCore() (*SelectCore, error) {
	p.next()
	if !p.acceptKw("DISTINCT") {
		p.acceptKw("ALL")
	}
	items, err := p.scanExpr(atClauseEnd)
	if err != nil {
		return nil, err
	}
	s := &SelectCore{Items: items}
	if p.acceptKw("FROM") {
		if s.From, err = p.parseFromList(); err != nil {
			return nil, err
		}
	}
	for {
		switch {
		case p.atKw("WHERE", "HAVING", "WINDOW", "QUALIFY"):
			p.next()
		case p.atKw("GROUP") && isKw(p.peekAt(1), "BY"):
			p.pos += 2
		default:
			return s, nil
		}
		clause, err := p.scanExpr(atClauseEnd)
		if err != nil {
			return nil, err
		}
		s.Clauses = s.Clauses.add(clause)
	}
}

func (p *parser) parseValues() (*ValuesBody, error) {
	p.next()
	v := &ValuesBody{}
	for {
		var row *Expr
		var err error
		if p.atOp("(") {
			row, err = p.parseGroup()
		} else {
			row, err = p.scanExpr(func(p *parser) bool {
				return atClauseEnd(p) || p.atOp(",") || p.atKw("AS")
			})
		}
		if err != nil {
			return nil, err
		}
		v.Rows = v.Rows.add(row)
		if !p.acceptOp(",") {
			return v, nil
		}
	}
}

func (p *parser) parseFromList() ([]TableExpr, error) {
	var list []TableExpr
	for {
		te, err := p.parseTableExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, te)
		if !p.acceptOp(",") {
			return list, nil
		}
	}
}

func (p *parser) parseTableExpr() (TableExpr, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	for {
		if p.atKw("LATERAL") && isKw(p.peekAt(1), "VIEW") {
			view, err := p.parseLateralView()
			if err != nil {
				return nil, err
			}
			left = &Join{Kind: "LATERAL VIEW", Left: left, Right: view}
			continue
		}
		kind, ok := p.parseJoinKind()
		if !ok {
			return left, nil
		}
		right, err := p.parseTableFactor()
		if err != nil {
			return nil, err
		}
		j := &Join{Kind: kind, Left: left, Right: right}
		switch {
		case p.acceptKw("ON"):
			if j.On, err = p.scanExpr(atJoinEnd); err != nil {
				return nil, err
			}
		case p.acceptKw("USING"):
			if !p.atOp("(") {
				return nil, p.unexpected(p.peek(), "'(' after USING")
			}
			if _, err := p.parseGroup(); err != nil {
				return nil, err
			}
		}
		left = j
	}
}

func (p *parser) parseJoinKind() (string, bool) {
	start := p.pos
	var words []string
	take := func() { words = append(words, strings.ToUpper(p.next().text)) }

	if p.atKw("NATURAL") {
		take()
	}
	switch {
	case p.atKw("INNER", "CROSS", "SEMI", "ANTI"):
		take()
	case p.atKw("LEFT", "RIGHT", "FULL") && !isOp(p.peekAt(1), "("):
		take()
		if p.atKw("OUTER", "SEMI", "ANTI") {
			take()
		}
	}
	if !p.atKw("JOIN") {
		p.pos = start
		return "", false
	}
	take()
	return strings.Join(words, " "), true
}

func (p *parser) parseLateralView() (*TableFunc, error) {
	p.pos += 2
	p.acceptKw("OUTER")
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if !p.atOp("(") {
		return nil, p.unexpected(p.peek(), "'(' after generator function")
	}
	args, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	fn := &TableFunc{Name: name.Parts, Args: args}
	if t := p.peek(); (t.kind == tokIdent && !isReserved(t.text)) || t.kind == tokQuotedIdent {
		fn.Alias = p.next().text
	}
	if p.acceptKw("AS") {
		for {
			if t := p.next(); t.kind != tokIdent && t.kind != tokQuotedIdent {
				return nil, p.unexpected(t, "column alias")
			}
			if !p.acceptOp(",") {
				break
			}
		}
	}
	return fn, nil
}

func (p *parser) parseTableFactor() (TableExpr, error) {
	t := p.peek()
	switch {
	case isOp(t, "("):
		if p.queryAhead(1) {
			p.next()
			q, err := p.parseQuery()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			d := &DerivedTable{Query: q}
			d.Alias, err = p.parseAlias()
			return d, err
		}
		p.next()
		inner, err := p.parseTableExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		pt := &ParenTable{Inner: inner}
		pt.Alias, err = p.parseAlias()
		return pt, err

	case isKw(t, "LATERAL"):
		p.next()
		factor, err := p.parseTableFactor()
		if err != nil {
			return nil, err
		}
		if d, ok := factor.(*DerivedTable); ok {
			d.Lateral = true
		}
		return factor, nil

	case isKw(t, "VALUES"):
		body, err := p.parseValues()
		if err != nil {
			return nil, err
		}
		d := &DerivedTable{Query: &Query{Body: body}}
		d.Alias, err = p.parseAlias()
		return d, err

	case t.kind == tokString:
		p.next()
		ps := &PathSource{Path: t.text}
		var err error
		ps.Alias, err = p.parseAlias()
		return ps, err

	case t.kind == tokIdent || t.kind == tokQuotedIdent || t.kind == tokParam:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if p.atOp("(") {
			args, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			fn := &TableFunc{Name: name.Parts, Args: args}
			if fn.Alias, err = p.parseAlias(); err != nil {
				return nil, err
			}
			return fn, nil
		}
		extra, err := p.parseTableModifiers()
		if err != nil {
			return nil, err
		}
		var te TableExpr = name
		if len(name.Parts) > 1 && strings.ContainsAny(name.Name(), "/:") {
			te = &PathSource{Path: name.Name()}
		}
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		pivot, err := p.parsePivot()
		if err != nil {
			return nil, err
		}
		extra = extra.add(pivot)
		switch v := te.(type) {
		case *TableName:
			v.Alias, v.Extra = alias, extra
		case *PathSource:
			v.Alias, v.Extra = alias, extra
		}
		return te, nil

	default:
		return nil, p.unexpected(t, "table name or subquery")
	}
}

// parseTableModifiers skips time travel, TABLESAMPLE and @version suffixes.
func (p *parser) parseTableModifiers() (*Expr, error) {
	var e *Expr
	for {
		switch {
		case p.atKw("VERSION", "TIMESTAMP") && isKw(p.peekAt(1), "AS") && isKw(p.peekAt(2), "OF"):
			p.pos += 3
		case p.atKw("FOR") && isKw(p.peekAt(1), "SYSTEM_TIME", "SYSTEM_VERSION") &&
			isKw(p.peekAt(2), "AS") && isKw(p.peekAt(3), "OF"):
			p.pos += 4
		case p.atKw("TABLESAMPLE") && isOp(p.peekAt(1), "("):
			p.next()
			g, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			e = e.add(g)
			if p.acceptKw("REPEATABLE") && p.atOp("(") {
				if _, err := p.parseGroup(); err != nil {
					return nil, err
				}
			}
			continue
		case p.atOp("@"):
			p.next()
			p.next()
			continue
		default:
			return e, nil
		}
		// The AS OF operand: a literal or a call.
		p.next()
		if p.atOp("(") {
			g, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			e = e.add(g)
		}
	}
}

func (p *parser) parsePivot() (*Expr, error) {
	var e *Expr
	for p.atKw("PIVOT", "UNPIVOT") {
		p.next()
		p.acceptSeq("INCLUDE", "NULLS")
		p.acceptSeq("EXCLUDE", "NULLS")
		if !p.atOp("(") {
			return nil, p.unexpected(p.peek(), "'(' after PIVOT")
		}
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		e = e.add(g)
		if _, err := p.parseAlias(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// parseName reads a dotted name such as catalog.schema.table.
func (p *parser) parseName() (*TableName, error) {
	first := p.next()
	if !isNamePart(first) {
		return nil, p.unexpected(first, "name")
	}
	name := &TableName{Parts: []string{first.text}, Pos: first.pos}
	for p.atOp(".") && isNamePart(p.peekAt(1)) {
		p.next()
		name.Parts = append(name.Parts, p.next().text)
	}
	return name, nil
}

func isNamePart(t token) bool {
	return t.kind == tokIdent || t.kind == tokQuotedIdent || t.kind == tokParam
}

// parseAlias reads an optional [AS] alias with an optional column list.
func (p *parser) parseAlias() (string, error) {
	var alias string
	if p.acceptKw("AS") {
		t := p.next()
		if t.kind != tokIdent && t.kind != tokQuotedIdent {
			return "", p.unexpected(t, "alias")
		}
		alias = t.text
	} else if t := p.peek(); (t.kind == tokIdent && !isReserved(t.text)) || t.kind == tokQuotedIdent {
		alias = p.next().text
	}
	if alias != "" && p.atOp("(") && !p.queryAhead(1) {
		if _, err := p.parseGroup(); err != nil {
			return "", err
		}
	}
	return alias, nil
}

func (p *parser) parseTarget() (*TableName, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if name.Alias, err = p.parseAlias(); err != nil {
		return nil, err
	}
	return name, nil
}

func (p *parser) parseInsert(w *WithClause) (Statement, error) {
	p.next()
	s := &InsertStmt{With: w}
	switch {
	case p.acceptKw("OVERWRITE"):
		s.Overwrite = true
	case p.acceptKw("INTO"):
	default:
		return nil, p.unexpected(p.peek(), "INTO or OVERWRITE")
	}
	p.acceptKw("TABLE")
	target, err := p.parseName()
	if err != nil {
		return nil, err
	}
	s.Target = target

	for {
		switch {
		case p.atKw("PARTITION") && isOp(p.peekAt(1), "("):
			p.next()
			g, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			s.Extra = s.Extra.add(g)
		case p.atOp("(") && !p.queryAhead(1):
			if _, err := p.parseGroup(); err != nil {
				return nil, err
			}
		case p.acceptSeq("IF", "NOT", "EXISTS"), p.acceptSeq("BY", "NAME"):
		case p.atKw("REPLACE"):
			p.next()
			if p.acceptKw("USING") {
				if _, err := p.parseGroup(); err != nil {
					return nil, err
				}
				continue
			}
			if err := p.expectKw("WHERE"); err != nil {
				return nil, err
			}
			cond, err := p.scanExpr(func(p *parser) bool {
				return p.atKw("SELECT", "WITH", "VALUES", "TABLE") || (p.atOp("(") && p.queryAhead(0))
			})
			if err != nil {
				return nil, err
			}
			s.Extra = s.Extra.add(cond)
		default:
			if s.Source, err = p.parseQuery(); err != nil {
				return nil, err
			}
			return s, nil
		}
	}
}

func (p *parser) parseCreate() (Statement, error) {
	start := p.pos
	p.next()
	p.acceptSeq("OR", "REPLACE")
	for p.acceptKw("GLOBAL", "TEMPORARY", "TEMP", "EXTERNAL", "MATERIALIZED", "STREAMING", "LIVE", "TRANSIENT", "VOLATILE") {
	}
	if !p.atKw("TABLE", "VIEW") {
		p.pos = start
		return p.parseCommand()
	}
	s := &CreateStmt{Kind: strings.ToUpper(p.next().text)}
	p.acceptSeq("IF", "NOT", "EXISTS")
	target, err := p.parseName()
	if err != nil {
		return nil, err
	}
	s.Target = target

	for !p.atStatementEnd() {
		switch {
		case p.atKw("AS") && (isKw(p.peekAt(1), "SELECT", "WITH", "VALUES", "TABLE") || (isOp(p.peekAt(1), "(") && p.queryAhead(1))):
			p.next()
			fallthrough
		case p.atKw("SELECT", "WITH") || (p.atOp("(") && p.queryAhead(0)):
			if s.As, err = p.parseQuery(); err != nil {
				return nil, err
			}
		case p.acceptKw("LIKE"):
			if s.Like, err = p.parseName(); err != nil {
				return nil, err
			}
		case p.acceptKw("SHALLOW", "DEEP"), p.atKw("CLONE"):
			if err := p.expectKw("CLONE"); err != nil {
				return nil, err
			}
			if s.Clone, err = p.parseName(); err != nil {
				return nil, err
			}
			if _, err := p.parseTableModifiers(); err != nil {
				return nil, err
			}
		case p.atOp("("):
			g, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			s.Extra = s.Extra.add(g)
		case p.atOp(")"):
			return nil, p.unexpected(p.peek(), "';' or end of input")
		default:
			p.next()
		}
	}
	return s, nil
}

func (p *parser) parseMerge() (Statement, error) {
	p.next()
	p.acceptKw("INTO")
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if err := p.expectKw("USING"); err != nil {
		return nil, err
	}
	source, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	if err := p.expectKw("ON"); err != nil {
		return nil, err
	}
	on, err := p.scanExpr(func(p *parser) bool { return p.atKw("WHEN") })
	if err != nil {
		return nil, err
	}
	clauses, err := p.scanExpr(nil)
	if err != nil {
		return nil, err
	}
	return &MergeStmt{Target: target, Source: source, On: on, Clauses: clauses}, nil
}

func (p *parser) parseUpdate() (Statement, error) {
	p.next()
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if err := p.expectKw("SET"); err != nil {
		return nil, err
	}
	s := &UpdateStmt{Target: target}
	if s.Set, err = p.scanExpr(func(p *parser) bool { return p.atKw("FROM", "WHERE") }); err != nil {
		return nil, err
	}
	if p.acceptKw("FROM") {
		if s.From, err = p.parseFromList(); err != nil {
			return nil, err
		}
	}
	if p.acceptKw("WHERE") {
		if s.Where, err = p.scanExpr(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) parseDelete() (Statement, error) {
	p.next()
	if err := p.expectKw("FROM"); err != nil {
		return nil, err
	}
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	s := &DeleteStmt{Target: target}
	if p.acceptKw("USING") {
		if s.Using, err = p.parseFromList(); err != nil {
			return nil, err
		}
	}
	if p.acceptKw("WHERE") {
		if s.Where, err = p.scanExpr(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}
