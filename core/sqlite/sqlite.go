// Package sqlite selects the SQLite driver behind the corpus catalog:
// pure Go modernc.org/sqlite by default, mattn/go-sqlite3 when built
// with the cgo_sqlite tag and CGO enabled.
//
// Open decorates the data source name with the connection parameters
// the catalog relies on (foreign key enforcement, a busy timeout), so
// callers should prefer it over sql.Open with a bare path.
package sqlite

import (
	"database/sql"
	"fmt"
)

// Open opens the database at path through the selected driver, with
// foreign keys enforced and a 5s busy timeout.
func Open(path string) (*sql.DB, error) {
	return sql.Open(driverName, dsn(path, false))
}

// OpenReadOnly opens the database at path without write access.
func OpenReadOnly(path string) (*sql.DB, error) {
	return sql.Open(driverName, dsn(path, true))
}

// MustOpen opens the database at path and panics on failure. For
// initialization paths where a missing database is unrecoverable.
func MustOpen(path string) *sql.DB {
	db, err := Open(path)
	if err != nil {
		panic(fmt.Sprintf("sqlite: opening %s: %v", path, err))
	}
	return db
}

// DriverName returns the registered database/sql driver name.
func DriverName() string {
	return driverName
}

// DriverType returns "purego" or "cgo" depending on the build.
func DriverType() string {
	return driverType
}

// IsCGO reports whether the mattn CGO driver is compiled in.
func IsCGO() bool {
	return driverType == "cgo"
}

// Info describes the compiled-in SQLite driver.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns the compiled-in driver configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}
