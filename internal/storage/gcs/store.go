// Package gcs is a Google Cloud Storage snapshot store.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
	"google.golang.org/api/iterator"
)

// Store writes snapshots as JSON objects in a GCS bucket.
type Store struct {
	client *storage.Client
	bucket string
}

var _ snapshot.Store = (*Store)(nil)

// NewStore creates a GCS snapshot store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucketName string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &Store{client: client, bucket: bucketName}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Save uploads the snapshot. Object names encode the taken-at instant, so a
// retried save for the same instant overwrites harmlessly.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	obj := s.client.Bucket(s.bucket).Object(snapshot.ObjectName(snap.TakenAt))
	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object: %w", err)
	}
	return nil
}

// List scans the bucket for snapshot objects, newest first. Foreign
// objects are ignored.
func (s *Store) List(ctx context.Context) ([]snapshot.Info, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: "tasks-"})

	infos := []snapshot.Info{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		takenAt, ok := snapshot.ParseObjectName(attrs.Name)
		if !ok {
			continue
		}
		infos = append(infos, snapshot.Info{Name: attrs.Name, TakenAt: takenAt})
	}

	// Names sort oldest first; reverse to newest first.
	for i, j := 0, len(infos)-1; i < j; i, j = i+1, j-1 {
		infos[i], infos[j] = infos[j], infos[i]
	}
	return infos, nil
}

// Exists reports whether a snapshot object with the given name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(name).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check object existence: %w", err)
}
