package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/interfaces"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
)

// Memory implements DatasetRepository with an in-process snapshot.
// The dataset itself is immutable; only the pointer swap is guarded.
type Memory struct {
	mu      sync.RWMutex
	current *model.Dataset
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.DatasetRepository {
	return &Memory{}
}

// Snapshot returns the current dataset
func (m *Memory) Snapshot(ctx context.Context) (*model.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, model.ErrDatasetNotLoaded
	}
	return m.current, nil
}

// Store replaces the current dataset
func (m *Memory) Store(ctx context.Context, dataset *model.Dataset) error {
	if dataset == nil {
		return goerr.New("dataset is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = dataset
	return nil
}
