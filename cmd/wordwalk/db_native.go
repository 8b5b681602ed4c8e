//go:build !cgo_sqlite

package main

import (
	_ "modernc.org/sqlite"
)

// The pure Go driver is the default; build with -tags cgo_sqlite to use
// mattn/go-sqlite3 instead.
const (
	sqliteDriver = "sqlite"
	dsnOptions   = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
)
