package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// JSONUserStore keeps the credential record set in a single
// pretty-printed JSON file, rewritten in full on every save.
type JSONUserStore struct {
	path string
}

// NewJSONUserStore creates a store backed by the file at path. The file
// is created on first Load if it does not exist.
func NewJSONUserStore(path string) *JSONUserStore {
	return &JSONUserStore{path: path}
}

// Load reads the full credential set. A missing file is initialized as an
// empty document and persisted before returning.
func (s *JSONUserStore) Load() (map[string]string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := s.Save(map[string]string{}); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	users := make(map[string]string)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return users, nil
}

// Save rewrites the full credential set, replacing prior content.
func (s *JSONUserStore) Save(users map[string]string) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}
