package club

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// ErrMatchNotFound is returned when no active match has the given ID.
var ErrMatchNotFound = errors.New("match not found")

// ErrCorruptHistory is returned when a stored edit history cannot be decoded.
// Such a match is never edited or deleted, so its history is not overwritten.
var ErrCorruptHistory = errors.New("edit history could not be decoded")

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex

	subMu  sync.Mutex
	subs   map[int]chan ledger.Snapshot
	nextID int
}
