// storage package keeps key pairs and ciphertexts in a prefixed key-value
// store. The following prefixes are used:
//   - 'k/' for named key pairs
//   - 'ct/' for ciphertexts, keyed by their uuid
//
// Every artifact is stored CBOR encoded with the core deterministic options.
package storage

import (
	"errors"
	"sync"

	"go.vocdoni.io/dvote/db"
)

var (
	// Prefixes for the keys in the database.
	keyPrefix        = []byte("k/")
	ciphertextPrefix = []byte("ct/")
)

// ErrNotFound is returned when the requested artifact does not exist.
var ErrNotFound = errors.New("not found")

// Storage wraps the database and exposes typed accessors for the stored
// artifacts.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	s.db.Close()
}
