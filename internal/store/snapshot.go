package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/palacelab/cardgen/internal/cards"
)

// Snapshot persists the most recent finalized card list as one JSON
// file, overwritten wholesale on every generation. Writes go through a
// temp file and rename so readers never observe a torn file.
type Snapshot struct {
	mu   sync.Mutex
	path string
}

// NewSnapshot creates a snapshot store at path.
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: filepath.Clean(path)}
}

// Save replaces the snapshot with cs.
func (s *Snapshot) Save(cs []cards.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	if cs == nil {
		cs = []cards.Card{}
	}
	b, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load returns the current snapshot. A missing file yields an empty
// list, not an error.
func (s *Snapshot) Load() ([]cards.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []cards.Card{}, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var cs []cards.Card
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return cs, nil
}
