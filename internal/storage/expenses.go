package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"expense-ledger/internal/models"
)

// JSONExpenseStore keeps the expense record set in a single
// pretty-printed JSON file, rewritten in full on every save.
type JSONExpenseStore struct {
	path string
}

// NewJSONExpenseStore creates a store backed by the file at path. The
// file is created on first Load if it does not exist.
func NewJSONExpenseStore(path string) *JSONExpenseStore {
	return &JSONExpenseStore{path: path}
}

// Load reads the full expense set. A missing file is initialized as an
// empty document first. Records without an id are assigned one and the
// repaired document is written back before Load returns, so callers never
// observe id-less records.
func (s *JSONExpenseStore) Load() (map[string][]models.Expense, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := s.Save(map[string][]models.Expense{}); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read expenses file: %w", err)
	}
	expenses := make(map[string][]models.Expense)
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if RepairMissingIDs(expenses) {
		if err := s.Save(expenses); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// Save rewrites the full expense set, replacing prior content. Each
// user's records keep their insertion order.
func (s *JSONExpenseStore) Save(expenses map[string][]models.Expense) error {
	data, err := json.MarshalIndent(expenses, "", "    ")
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write expenses file: %w", err)
	}
	return nil
}
