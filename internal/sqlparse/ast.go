package sqlparse

// Script is a parsed SQL file: zero or more statements separated by ';'.
type Script struct {
	Statements []Statement
}

// Statement is one of *QueryStmt, *InsertStmt, *CreateStmt, *MergeStmt,
// *UpdateStmt, *DeleteStmt or *CommandStmt.
type Statement interface {
	statementNode()
}

// QueryBody is one of *SelectCore, *SetOp, *ValuesBody, *TableQuery or
// *ParenQuery.
type QueryBody interface {
	queryBodyNode()
}

// TableExpr is one of *TableName, *DerivedTable, *Join, *TableFunc,
// *PathSource or *ParenTable.
type TableExpr interface {
	tableExprNode()
}

// Expr is an expression kept at token level. Only the subqueries it contains
// are retained, since they are the only part that can reference tables.
type Expr struct {
	Subqueries []*Query
}

func (e *Expr) add(other *Expr) *Expr {
	if other == nil || len(other.Subqueries) == 0 {
		return e
	}
	if e == nil {
		e = &Expr{}
	}
	e.Subqueries = append(e.Subqueries, other.Subqueries...)
	return e
}

// Query is a full query expression with its own scope.
type Query struct {
	With *WithClause
	Body QueryBody
	// Tail holds ORDER BY / LIMIT style trailing clauses.
	Tail *Expr
}

// WithClause is a list of common table expressions.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE is a single named query inside a WITH clause.
type CTE struct {
	Name  string
	Query *Query
}

// SelectCore is a single SELECT block.
type SelectCore struct {
	Items *Expr
	From  []TableExpr
	// Clauses holds WHERE, GROUP BY, HAVING, WINDOW and QUALIFY.
	Clauses *Expr
}

// SetOp combines two query bodies with UNION, INTERSECT, EXCEPT or MINUS.
type SetOp struct {
	Op    string
	All   bool
	Left  QueryBody
	Right QueryBody
}

// ValuesBody is an inline VALUES list.
type ValuesBody struct {
	Rows *Expr
}

// TableQuery is the `TABLE name` shorthand for SELECT * FROM name.
type TableQuery struct {
	Table *TableName
}

// ParenQuery is a parenthesized query used as a set operand.
type ParenQuery struct {
	Query *Query
}

// TableName is a possibly qualified table reference.
type TableName struct {
	Parts []string
	Alias string
	Pos   int
	// Extra holds subqueries found in time travel or PIVOT clauses.
	Extra *Expr
}

// Name returns the unqualified table name.
func (t *TableName) Name() string {
	return t.Parts[len(t.Parts)-1]
}

// Qualified reports whether the reference carries a schema or catalog.
func (t *TableName) Qualified() bool {
	return len(t.Parts) > 1
}

// DerivedTable is a subquery in FROM.
type DerivedTable struct {
	Query   *Query
	Alias   string
	Lateral bool
}

// Join combines two table expressions.
type Join struct {
	Kind  string
	Left  TableExpr
	Right TableExpr
	On    *Expr
}

// TableFunc is a table-valued function call such as range(10) or a
// LATERAL VIEW generator.
type TableFunc struct {
	Name  []string
	Args  *Expr
	Alias string
}

// PathSource reads files directly, e.g. parquet.`/mnt/raw/x` or a string
// path in COPY INTO.
type PathSource struct {
	Path  string
	Alias string
	Extra *Expr
}

// ParenTable is a parenthesized join tree.
type ParenTable struct {
	Inner TableExpr
	Alias string
}

// QueryStmt is a stand-alone query.
type QueryStmt struct {
	Query *Query
}

// InsertStmt is INSERT INTO/OVERWRITE. Target is written, not read.
type InsertStmt struct {
	With      *WithClause
	Overwrite bool
	Target    *TableName
	Source    *Query
	// Extra holds PARTITION specs and REPLACE WHERE predicates.
	Extra *Expr
}

// CreateStmt is CREATE TABLE or CREATE VIEW.
type CreateStmt struct {
	Kind   string
	Target *TableName
	As     *Query
	Like   *TableName
	Clone  *TableName
	Extra  *Expr
}

// MergeStmt is MERGE INTO target USING source.
type MergeStmt struct {
	Target  *TableName
	Source  TableExpr
	On      *Expr
	Clauses *Expr
}

// UpdateStmt is UPDATE target SET ... [FROM ...].
type UpdateStmt struct {
	Target *TableName
	Set    *Expr
	From   []TableExpr
	Where  *Expr
}

// DeleteStmt is DELETE FROM target [USING ...].
type DeleteStmt struct {
	Target *TableName
	Using  []TableExpr
	Where  *Expr
}

// CommandStmt is any other statement (USE, SET, DROP, OPTIMIZE, ...).
// Only subqueries in its body are retained.
type CommandStmt struct {
	Keyword string
	Body    *Expr
}

func (*QueryStmt) statementNode()   {}
func (*InsertStmt) statementNode()  {}
func (*CreateStmt) statementNode()  {}
func (*MergeStmt) statementNode()   {}
func (*UpdateStmt) statementNode()  {}
func (*DeleteStmt) statementNode()  {}
func (*CommandStmt) statementNode() {}

func (*SelectCore) queryBodyNode() {}
func (*SetOp) queryBodyNode()      {}
func (*ValuesBody) queryBodyNode() {}
func (*TableQuery) queryBodyNode() {}
func (*ParenQuery) queryBodyNode() {}

func (*TableName) tableExprNode()    {}
func (*DerivedTable) tableExprNode() {}
func (*Join) tableExprNode()         {}
func (*TableFunc) tableExprNode()    {}
func (*PathSource) tableExprNode()   {}
func (*ParenTable) tableExprNode()   {}
