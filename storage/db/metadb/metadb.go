// Package metadb opens the key-value databases backing the storage package.
package metadb

import (
	"cmp"
	"fmt"
	"os"
	"testing"

	"github.com/vocdoni/arbo/memdb"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
)

// TypeMemory selects a volatile in-memory database.
const TypeMemory = "memory"

// New opens a database of type typ under dir. dir is ignored for the
// in-memory type.
func New(typ, dir string) (db.Database, error) {
	switch typ {
	case db.TypePebble:
		database, err := pebbledb.New(db.Options{Path: dir})
		if err != nil {
			return nil, err
		}
		return database, nil
	case TypeMemory:
		return memdb.New(), nil
	default:
		return nil, fmt.Errorf("invalid dbType: %q. Available types: %q, %q",
			typ, db.TypePebble, TypeMemory)
	}
}

// ForTest returns the database type used by tests, read from DB_TYPE.
func ForTest() (typ string) {
	return cmp.Or(os.Getenv("DB_TYPE"), db.TypePebble) // default to Pebble
}

// NewTest opens a database for tb under a temporary directory and closes it
// on cleanup.
func NewTest(tb testing.TB) db.Database {
	database, err := New(ForTest(), tb.TempDir())
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() { database.Close() })
	return database
}
