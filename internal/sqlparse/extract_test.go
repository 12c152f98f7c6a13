package sqlparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTables(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		sql    string
		want   []string
	}{
		{
			name: "simple join",
			sql:  "SELECT * FROM a JOIN b ON a.id = b.id",
			want: []string{"a", "b"},
		},
		{
			name: "qualified names keep the last part",
			sql:  "SELECT c.id FROM source.customers c",
			want: []string{"customers"},
		},
		{
			name: "cte shadows an external table",
			sql:  "WITH orders AS (SELECT * FROM raw_orders) SELECT * FROM orders",
			want: []string{"raw_orders"},
		},
		{
			name: "cte body reads the table it shadows",
			sql:  "WITH orders AS (SELECT * FROM orders WHERE ok) SELECT * FROM orders",
			want: []string{"orders"},
		},
		{
			name: "later cte sees earlier cte",
			sql:  "WITH a AS (SELECT * FROM src), b AS (SELECT * FROM a) SELECT * FROM b",
			want: []string{"src"},
		},
		{
			name: "recursive cte sees itself",
			sql: `WITH RECURSIVE tree AS (
				SELECT id FROM nodes WHERE parent IS NULL
				UNION ALL
				SELECT n.id FROM nodes n JOIN tree t ON n.parent = t.id
			) SELECT * FROM tree`,
			want: []string{"nodes"},
		},
		{
			name: "cte defined in a subquery does not leak out",
			sql:  "SELECT * FROM (WITH t AS (SELECT 1) SELECT * FROM t) x JOIN t ON 1 = 1",
			want: []string{"t"},
		},
		{
			name: "qualified name bypasses a cte of the same name",
			sql:  "WITH orders AS (SELECT 1) SELECT * FROM orders JOIN sales.orders o ON 1 = 1",
			want: []string{"orders"},
		},
		{
			name: "cte names resolve case-insensitively",
			sql:  "WITH Recent AS (SELECT * FROM events) SELECT * FROM RECENT",
			want: []string{"events"},
		},
		{
			name: "derived table alias is local",
			sql:  "SELECT t.x FROM (SELECT x FROM base) AS t",
			want: []string{"base"},
		},
		{
			name: "subqueries in expressions",
			sql: `SELECT (SELECT max(v) FROM c) AS m FROM a
				WHERE id IN (SELECT id FROM b) AND EXISTS (SELECT 1 FROM d WHERE d.x = a.x)`,
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "arithmetic around a subquery",
			sql:  "SELECT * FROM a WHERE x > ((SELECT avg(v) FROM t) * 2)",
			want: []string{"a", "t"},
		},
		{
			name:   "self reference is excluded",
			script: "x",
			sql:    "INSERT INTO x SELECT * FROM x",
			want:   []string{},
		},
		{
			name:   "self reference is excluded regardless of case and qualification",
			script: "dim_customer",
			sql:    "CREATE OR REPLACE TABLE gold.DIM_CUSTOMER AS SELECT * FROM gold.dim_customer UNION SELECT * FROM staging",
			want:   []string{"staging"},
		},
		{
			name:   "insert target is not a read",
			script: "fact_order",
			sql:    "INSERT INTO fact_order_history SELECT * FROM fact_order_stage",
			want:   []string{"fact_order_stage"},
		},
		{
			name:   "with before insert",
			script: "agg",
			sql:    "WITH s AS (SELECT * FROM sales) INSERT INTO agg SELECT * FROM s",
			want:   []string{"sales"},
		},
		{
			name:   "insert overwrite with partition and column list",
			script: "agg",
			sql:    "INSERT OVERWRITE TABLE agg PARTITION (dt = '2024-01-01') (a, b) SELECT a, b FROM src",
			want:   []string{"src"},
		},
		{
			name:   "insert values",
			script: "lookup",
			sql:    "INSERT INTO lookup VALUES (1, 'a'), (2, (SELECT max(code) FROM codes))",
			want:   []string{"codes"},
		},
		{
			name:   "create table as select",
			script: "dim_customer",
			sql:    "CREATE OR REPLACE TABLE dim_customer AS SELECT c.id FROM source.customers c LEFT JOIN raw_orders o ON o.cid = c.id",
			want:   []string{"customers", "raw_orders"},
		},
		{
			name:   "create table with column definitions only",
			script: "events",
			sql:    "CREATE TABLE IF NOT EXISTS events (id INT, name STRING) USING DELTA TBLPROPERTIES ('x' = 'y')",
			want:   []string{},
		},
		{
			name:   "create view with parenthesized query",
			script: "v",
			sql:    "CREATE VIEW v COMMENT 'recent' AS (SELECT * FROM events)",
			want:   []string{"events"},
		},
		{
			name:   "create like and clone",
			script: "bak",
			sql:    "CREATE TABLE t2 LIKE t1; CREATE TABLE bak DEEP CLONE prod.sales VERSION AS OF 3",
			want:   []string{"sales", "t1"},
		},
		{
			name:   "merge reads the source",
			script: "target",
			sql: `MERGE INTO target t USING (SELECT * FROM staging) s ON t.id = s.id
				WHEN MATCHED THEN UPDATE SET *
				WHEN NOT MATCHED THEN INSERT *`,
			want: []string{"staging"},
		},
		{
			name:   "update from",
			script: "dim",
			sql:    "UPDATE dim d SET x = s.x FROM src s WHERE d.id IN (SELECT id FROM keep)",
			want:   []string{"keep", "src"},
		},
		{
			name:   "delete using",
			script: "fact",
			sql:    "DELETE FROM fact USING stale WHERE fact.id = stale.id",
			want:   []string{"stale"},
		},
		{
			name: "set operations",
			sql:  "SELECT a FROM x UNION ALL SELECT a FROM y EXCEPT (SELECT a FROM z)",
			want: []string{"x", "y", "z"},
		},
		{
			name: "select star except columns",
			sql:  "SELECT * EXCEPT (secret) FROM users",
			want: []string{"users"},
		},
		{
			name: "left function inside join condition",
			sql:  "SELECT * FROM a LEFT JOIN b ON LEFT(a.code, 2) = b.code JOIN c ON c.id = a.id",
			want: []string{"a", "b", "c"},
		},
		{
			name: "lateral view and table functions are not tables",
			sql:  "SELECT e.col FROM events LATERAL VIEW OUTER explode(items) e AS col CROSS JOIN range(10) r",
			want: []string{"events"},
		},
		{
			name: "path sources are not tables",
			sql:  "SELECT * FROM parquet.`/mnt/raw/orders` JOIN json.`s3://bucket/x` j ON 1 = 1",
			want: []string{},
		},
		{
			name: "quoted and substituted names",
			sql:  "SELECT * FROM `my-catalog`.sales.`Order Lines` JOIN ${catalog}.raw_${env}.items i ON 1 = 1",
			want: []string{"Order Lines", "items"},
		},
		{
			name: "comments are ignored",
			sql:  "-- FROM ghost\nSELECT /* FROM phantom */ * FROM real_table -- trailing",
			want: []string{"real_table"},
		},
		{
			name: "commands are scanned for subqueries only",
			sql:  "USE CATALOG main; SET x = (SELECT max(id) FROM ids); OPTIMIZE events ZORDER BY (id)",
			want: []string{"ids"},
		},
		{
			name: "order by and limit",
			sql:  "SELECT * FROM a ORDER BY (SELECT 1 FROM b) LIMIT 10",
			want: []string{"a", "b"},
		},
		{
			name: "values as a table",
			sql:  "SELECT * FROM VALUES (1, 2), (3, 4) AS v(a, b) JOIN dim ON dim.a = v.a",
			want: []string{"dim"},
		},
		{
			name: "empty script",
			sql:  "  -- nothing here\n",
			want: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractTables(tc.sql, tc.script)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractTables_Deduplicates(t *testing.T) {
	got, err := ExtractTables("SELECT * FROM a JOIN a a2 ON 1 = 1 WHERE x IN (SELECT x FROM a)", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestExtractTables_IdempotentAndOrderIndependent(t *testing.T) {
	first := "SELECT * FROM b; SELECT * FROM a JOIN c ON 1 = 1"
	second := "SELECT * FROM c JOIN a ON 1 = 1; SELECT * FROM b"

	a1, err := ExtractTables(first, "x")
	require.NoError(t, err)
	a2, err := ExtractTables(first, "x")
	require.NoError(t, err)
	b, err := ExtractTables(second, "x")
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, a1, b)
}

func TestExtractTables_ParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		sql     string
		wantMsg string
	}{
		{"unclosed subquery", "SELECT * FROM (", "expected table name or subquery"},
		{"unbalanced parenthesis", "SELECT * FROM t WHERE (a = 1", "unbalanced '('"},
		{"unterminated string", "SELECT 'oops FROM t", "unterminated string literal"},
		{"unterminated comment", "SELECT 1 /* no end", "unterminated block comment"},
		{"stray closing parenthesis", "SELECT 1)", "expected ';' or end of input"},
		{"missing cte body", "WITH a AS SELECT 1", "expected '('"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractTables(tc.sql, "broken")
			require.Error(t, err)
			assert.Nil(t, got)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "broken", parseErr.Script)
			assert.Contains(t, parseErr.Msg, tc.wantMsg)
			assert.Contains(t, err.Error(), "broken")
		})
	}
}

func TestParseError_Position(t *testing.T) {
	_, err := Parse("pos", "SELECT *\nFROM (")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, 7, parseErr.Column)
}
