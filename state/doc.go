// Package state maps the sync store's tables onto the generic operations in
// the database package. Each table gets a facade holding its column names,
// with one retrieve and one update method per meaningful column and an
// insert taking the table's row type.
//
// Facades receive their *database.Operations through their constructor;
// nothing here reads package-level connection state.
package state
