package interfaces

import (
	"context"

	"github.com/secmon-lab/kevtrend/pkg/domain/model"
)

// DatasetRepository holds the current catalog snapshot. Snapshots are
// immutable; Store swaps the whole snapshot so readers keep whatever
// snapshot they already obtained.
type DatasetRepository interface {
	// Snapshot returns the current dataset
	Snapshot(ctx context.Context) (*model.Dataset, error)

	// Store replaces the current dataset
	Store(ctx context.Context, dataset *model.Dataset) error
}

// FeedSource provides catalog datasets from an external feed
type FeedSource interface {
	// Fetch retrieves and decodes the current catalog
	Fetch(ctx context.Context) (*model.Dataset, error)
}
