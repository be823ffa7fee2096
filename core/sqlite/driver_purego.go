//go:build !cgo_sqlite

package sqlite

import (
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const (
	driverName    = "sqlite"
	driverType    = "purego"
	driverPackage = "modernc.org/sqlite"
)

// dsn builds a modernc data source name. Pragmas ride along as _pragma
// query parameters, applied to every new connection in the pool.
func dsn(path string, readOnly bool) string {
	s := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if readOnly {
		s += "&mode=ro"
	}
	return s
}
