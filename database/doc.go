// Package database owns the connection lifecycle for the local sync store and
// exposes table-agnostic operations on top of it: create table, rename
// column, insert, update a single cell and retrieve rows by column value.
//
// Every operation opens its own connection, runs one statement inside a
// transaction, commits and closes the connection again. Table-specific
// column names live in the state package and are injected through the
// Operations value.
package database
