package memory

import (
	"testing"

	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/storage/compliance"
)

func TestStoreCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func() (task.Repository, func()) {
		return NewStore(), func() {}
	})
}
