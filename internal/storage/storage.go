// Package storage persists the credential and expense record sets.
//
// Both record sets are whole documents: every Load reads the full set and
// every Save rewrites it completely, replacing prior content. Two backends
// implement the same contracts: a pretty-printed JSON file per record set
// (the primary on-disk format) and an embedded SQLite database. No
// cross-operation locking is performed; concurrent writers follow
// last-writer-wins semantics.
package storage

import (
	"errors"
	"fmt"
	"io"

	"expense-ledger/internal/models"
)

// ErrCorrupt reports a backing store whose contents could not be decoded.
var ErrCorrupt = errors.New("corrupt store")

// UserStore persists the credential record set, mapping username to
// encoded password hash.
type UserStore interface {
	Load() (map[string]string, error)
	Save(users map[string]string) error
}

// ExpenseStore persists the expense record set, mapping username to that
// user's expenses in insertion order. Load never returns records without
// an id: missing ids are assigned and written back before Load returns.
type ExpenseStore interface {
	Load() (map[string][]models.Expense, error)
	Save(expenses map[string][]models.Expense) error
}

// RepairMissingIDs assigns a fresh id to every record that lacks one and
// reports whether anything changed. Documents written before ids existed
// are healed by this pass at load time.
func RepairMissingIDs(expenses map[string][]models.Expense) bool {
	dirty := false
	for _, records := range expenses {
		for i := range records {
			if records[i].EnsureID() {
				dirty = true
			}
		}
	}
	return dirty
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Stores bundles the two record sets behind one handle.
type Stores struct {
	Users    UserStore
	Expenses ExpenseStore

	closer io.Closer
}

// Open builds the stores for the chosen backend. The JSON backend uses
// usersPath and expensesPath; the SQLite backend keeps both record sets
// in the database at dbPath.
func Open(backend, usersPath, expensesPath, dbPath string) (*Stores, error) {
	switch backend {
	case BackendJSON:
		return &Stores{
			Users:    NewJSONUserStore(usersPath),
			Expenses: NewJSONExpenseStore(expensesPath),
		}, nil
	case BackendSQLite:
		db, err := OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:    db.Users(),
			Expenses: db.Expenses(),
			closer:   db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close releases backend resources. It is a no-op for the JSON backend.
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
