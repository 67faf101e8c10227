package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/storage/compliance"
)

func TestStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (task.Repository, func()) {
		path := filepath.Join(t.TempDir(), "tasks.db")
		store, err := NewStore(context.Background(), path)
		require.NoError(t, err)
		return store, func() { _ = store.Close() }
	})
}
