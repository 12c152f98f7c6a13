package sqlparse

import "strings"

// reserved words cannot be used as bare (AS-less) aliases.
var reserved = map[string]struct{}{}

func init() {
	for _, kw := range strings.Fields(`
		ALL AND ANTI AS BETWEEN BY CASE CLONE CLUSTER CROSS DISTINCT DISTRIBUTE
		ELSE END EXCEPT EXISTS FALSE FETCH FROM FULL GROUP HAVING IN INNER
		INTERSECT INTO IS JOIN LATERAL LEFT LIKE LIMIT MATCHED MINUS NATURAL NOT
		NULL OFFSET ON OR ORDER OUTER PARTITION PIVOT QUALIFY RETURNING RIGHT
		SELECT SEMI SET SORT TABLESAMPLE THEN TRUE UNION UNPIVOT USING VALUES
		WHEN WHERE WINDOW WITH`) {
		reserved[kw] = struct{}{}
	}
}

func isReserved(word string) bool {
	_, ok := reserved[strings.ToUpper(word)]
	return ok
}

// atClauseEnd reports whether the current token begins a clause that ends
// the expression being scanned.
func atClauseEnd(p *parser) bool {
	t := p.peek()
	if t.kind != tokIdent {
		return false
	}
	switch strings.ToUpper(t.text) {
	case "FROM", "WHERE", "HAVING", "WINDOW", "QUALIFY", "LIMIT", "OFFSET", "FETCH",
		"UNION", "INTERSECT", "MINUS":
		return true
	case "EXCEPT":
		return !p.exceptColumns()
	case "GROUP", "ORDER", "SORT", "CLUSTER", "DISTRIBUTE":
		return isKw(p.peekAt(1), "BY")
	case "LATERAL":
		return isKw(p.peekAt(1), "VIEW")
	}
	return false
}

// atJoinEnd ends a JOIN ... ON condition.
func atJoinEnd(p *parser) bool {
	if atClauseEnd(p) || p.atOp(",") {
		return true
	}
	t := p.peek()
	switch {
	case isKw(t, "JOIN", "INNER", "CROSS", "NATURAL", "FULL", "SEMI", "ANTI"):
		return true
	case isKw(t, "LEFT", "RIGHT"):
		return !isOp(p.peekAt(1), "(")
	}
	return false
}

// exceptColumns distinguishes SELECT * EXCEPT (a, b) from the EXCEPT set
// operator followed by a parenthesized query.
func (p *parser) exceptColumns() bool {
	return isOp(p.peekAt(1), "(") && !p.queryAhead(1)
}
