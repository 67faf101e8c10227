// Package fs is a filesystem-based snapshot store.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

// Store writes snapshots as JSON files under a base directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

var _ snapshot.Store = (*Store)(nil)

// NewStore creates a filesystem snapshot store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the snapshot as an indented JSON file. The name encodes the
// taken-at instant, so a retried save for the same instant overwrites
// harmlessly.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := filepath.Join(s.baseDir, snapshot.ObjectName(snap.TakenAt))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// List scans the directory for snapshot files, newest first. Foreign files
// are ignored.
func (s *Store) List(ctx context.Context) ([]snapshot.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	infos := []snapshot.Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		takenAt, ok := snapshot.ParseObjectName(entry.Name())
		if !ok {
			continue
		}
		infos = append(infos, snapshot.Info{Name: entry.Name(), TakenAt: takenAt})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].TakenAt.After(infos[j].TakenAt)
	})
	return infos, nil
}
