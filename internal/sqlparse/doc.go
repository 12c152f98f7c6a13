// Package sqlparse statically analyses SQL scripts. It lexes and parses a
// script into a small tagged-variant tree that keeps only what matters for
// dependency analysis (table sources, CTEs, subqueries) and walks that tree
// with a scope stack to find the tables a script reads.
//
// The grammar follows the Spark/Databricks dialect loosely: expressions are
// skipped at token level and only their subqueries are retained.
package sqlparse
