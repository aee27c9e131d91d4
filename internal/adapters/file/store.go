// Package file implements ports.RunStore on the local filesystem.
// Sweeps are stored as JSON files in a configured directory, one file per
// sweep, written atomically so an interrupted sweep never leaves a torn
// ledger behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"
)

// Store persists sweep state as JSON files under BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".nsweep/sweeps".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".nsweep", "sweeps")
	}
	return &Store{BasePath: basePath}
}

var _ ports.RunStore = (*Store)(nil)

// Save persists the sweep state to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, then renames it
// over the destination.
func (s *Store) Save(ctx context.Context, sweepID string, state *domain.SweepState) error {
	if sweepID == "" {
		return fmt.Errorf("sweepID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure sweep directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sweep state: %w", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sweepID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(sweepID)); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves the sweep state from its JSON file.
func (s *Store) Load(ctx context.Context, sweepID string) (*domain.SweepState, error) {
	if sweepID == "" {
		return nil, fmt.Errorf("sweepID cannot be empty")
	}

	data, err := os.ReadFile(s.path(sweepID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSweepNotFound
		}
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}

	var state domain.SweepState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sweep state: %w", err)
	}
	return &state, nil
}

// Delete removes the sweep file. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, sweepID string) error {
	if sweepID == "" {
		return fmt.Errorf("sweepID cannot be empty")
	}
	if err := os.Remove(s.path(sweepID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete sweep file: %w", err)
	}
	return nil
}

// List returns the IDs of all stored sweeps.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sweep directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, e.Name()[:len(e.Name())-len(".json")])
	}
	return ids, nil
}

func (s *Store) path(sweepID string) string {
	return filepath.Join(s.BasePath, sweepID+".json")
}
