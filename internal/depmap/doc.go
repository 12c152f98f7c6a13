// Package depmap walks a source tree of SQL scripts and builds the
// dependency map: for every script, the tables it reads. Each script is also
// copied into a run-scoped snapshot directory so the run executes exactly
// what was analysed.
package depmap
