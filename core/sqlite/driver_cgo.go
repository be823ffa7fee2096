//go:build cgo_sqlite

// CGO build backed by mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const (
	driverName    = "sqlite3"
	driverType    = "cgo"
	driverPackage = "github.com/mattn/go-sqlite3"
)

// dsn builds a mattn data source name using its underscore-prefixed
// connection parameters.
func dsn(path string, readOnly bool) string {
	s := "file:" + path + "?_fk=1&_busy_timeout=5000"
	if readOnly {
		s += "&mode=ro"
	}
	return s
}
