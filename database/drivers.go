package database

import (
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DefaultDriver is the cgo SQLite driver.
	DefaultDriver = "sqlite3"
	// PureGoDriver needs no C toolchain.
	PureGoDriver = "sqlite"
)

// SupportedDrivers lists the driver names Operations can be configured with.
func SupportedDrivers() []string {
	return []string{DefaultDriver, PureGoDriver}
}
