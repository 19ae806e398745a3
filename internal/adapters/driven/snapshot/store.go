// Package snapshot persists embedding index snapshots as gob files.
package snapshot

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// DefaultFileName is the snapshot file name under the data directory.
const DefaultFileName = "index.gob"

// Store reads and writes index snapshots at a fixed path. Writes go
// through a temp file and rename, so a crash mid-write leaves either
// the old snapshot or none, never a torn one.
type Store struct {
	path string
}

// NewStore creates a snapshot store at the given path. An empty path
// defaults to ~/.beenthere/data/index.gob.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".beenthere", "data", DefaultFileName)
	}
	return &Store{path: path}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the snapshot atomically.
func (s *Store) Save(_ context.Context, snap *domain.IndexSnapshot) error {
	if snap == nil {
		return fmt.Errorf("saving snapshot: nil snapshot")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}

	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing snapshot file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back.
func (s *Store) Load(_ context.Context) (*domain.IndexSnapshot, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer file.Close()

	var snap domain.IndexSnapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}
