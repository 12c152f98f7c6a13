package sqlparse

import (
	"sort"
	"strings"
)

// ExtractTables returns the distinct, sorted table names that the script
// reads. CTE names and derived-table aliases resolve locally and are not
// reported; neither are tables the script only writes, nor any reference
// matching scriptName (compared case-insensitively). Qualified names are
// reduced to their last part.
func ExtractTables(src, scriptName string) ([]string, error) {
	script, err := Parse(scriptName, src)
	if err != nil {
		return nil, err
	}
	return TablesOf(script, scriptName), nil
}

// TablesOf runs extraction over an already parsed script.
func TablesOf(script *Script, scriptName string) []string {
	x := &extractor{self: scriptName, refs: make(map[string]struct{})}
	for _, stmt := range script.Statements {
		x.statement(stmt)
	}
	out := make([]string, 0, len(x.refs))
	for name := range x.refs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// scope is one level of name resolution. Names are stored upper-cased.
type scope struct {
	parent *scope
	names  map[string]struct{}
}

type extractor struct {
	self  string
	refs  map[string]struct{}
	scope *scope
}

func (x *extractor) push() {
	x.scope = &scope{parent: x.scope, names: make(map[string]struct{})}
}

func (x *extractor) pop() {
	x.scope = x.scope.parent
}

func (x *extractor) define(name string) {
	if name == "" || x.scope == nil {
		return
	}
	x.scope.names[strings.ToUpper(name)] = struct{}{}
}

func (x *extractor) resolves(name string) bool {
	key := strings.ToUpper(name)
	for s := x.scope; s != nil; s = s.parent {
		if _, ok := s.names[key]; ok {
			return true
		}
	}
	return false
}

func (x *extractor) record(t *TableName) {
	if t == nil {
		return
	}
	name := t.Name()
	if !t.Qualified() && x.resolves(name) {
		return
	}
	if strings.EqualFold(name, x.self) {
		return
	}
	x.refs[name] = struct{}{}
}

func (x *extractor) statement(stmt Statement) {
	x.push()
	defer x.pop()

	switch s := stmt.(type) {
	case *QueryStmt:
		x.query(s.Query)
	case *InsertStmt:
		x.with(s.With)
		x.expr(s.Extra)
		x.query(s.Source)
	case *CreateStmt:
		x.expr(s.Extra)
		x.query(s.As)
		x.record(s.Like)
		x.record(s.Clone)
	case *MergeStmt:
		x.table(s.Source)
		x.expr(s.On)
		x.expr(s.Clauses)
	case *UpdateStmt:
		x.tables(s.From)
		x.expr(s.Set)
		x.expr(s.Where)
	case *DeleteStmt:
		x.tables(s.Using)
		x.expr(s.Where)
	case *CommandStmt:
		x.expr(s.Body)
	}
}

func (x *extractor) with(w *WithClause) {
	if w == nil {
		return
	}
	for _, cte := range w.CTEs {
		if w.Recursive {
			x.define(cte.Name)
			x.query(cte.Query)
			continue
		}
		// Without RECURSIVE a CTE body sees only earlier CTEs, so a CTE
		// named after the table it reads still records that table.
		x.query(cte.Query)
		x.define(cte.Name)
	}
}

func (x *extractor) query(q *Query) {
	if q == nil {
		return
	}
	x.push()
	defer x.pop()

	x.with(q.With)
	x.body(q.Body)
	x.expr(q.Tail)
}

func (x *extractor) body(b QueryBody) {
	switch v := b.(type) {
	case *SelectCore:
		x.tables(v.From)
		x.expr(v.Items)
		x.expr(v.Clauses)
	case *SetOp:
		x.body(v.Left)
		x.body(v.Right)
	case *ValuesBody:
		x.expr(v.Rows)
	case *TableQuery:
		x.record(v.Table)
	case *ParenQuery:
		x.query(v.Query)
	}
}

func (x *extractor) tables(list []TableExpr) {
	for _, te := range list {
		x.table(te)
	}
}

func (x *extractor) table(te TableExpr) {
	switch v := te.(type) {
	case *TableName:
		x.record(v)
		x.expr(v.Extra)
	case *DerivedTable:
		x.query(v.Query)
		x.define(v.Alias)
	case *Join:
		x.table(v.Left)
		x.table(v.Right)
		x.expr(v.On)
	case *TableFunc:
		x.expr(v.Args)
		x.define(v.Alias)
	case *PathSource:
		x.expr(v.Extra)
	case *ParenTable:
		x.table(v.Inner)
	}
}

func (x *extractor) expr(e *Expr) {
	if e == nil {
		return
	}
	for _, q := range e.Subqueries {
		x.query(q)
	}
}
