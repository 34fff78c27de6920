package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/interfaces"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
)

// SeriesResult pairs an aggregated series with the snapshot it came from
type SeriesResult struct {
	Snapshot types.SnapshotID `json:"snapshot"`
	Series   model.Series     `json:"series"`
}

// OptionsResult pairs filter options with the snapshot they came from
type OptionsResult struct {
	Snapshot types.SnapshotID    `json:"snapshot"`
	Options  model.FilterOptions `json:"options"`
}

// DatasetUseCase answers filter queries over the current catalog snapshot
type DatasetUseCase struct {
	repo   interfaces.DatasetRepository
	source interfaces.FeedSource
	views  *model.ViewsConfig
}

// NewDataset creates a new DatasetUseCase. source may be nil when refresh
// is disabled; views may be nil when no presets are configured.
func NewDataset(repo interfaces.DatasetRepository, source interfaces.FeedSource, views *model.ViewsConfig) *DatasetUseCase {
	if views == nil {
		views = &model.ViewsConfig{}
	}
	return &DatasetUseCase{
		repo:   repo,
		source: source,
		views:  views,
	}
}

// Series runs one filter-and-aggregate query against the current snapshot
func (uc *DatasetUseCase) Series(ctx context.Context, selection model.Selection) (*SeriesResult, error) {
	if err := selection.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid selection")
	}

	dataset, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset snapshot")
	}

	return &SeriesResult{
		Snapshot: dataset.ID(),
		Series:   Aggregate(dataset.Records(), selection),
	}, nil
}

// Options returns the distinct filter values of the current snapshot
func (uc *DatasetUseCase) Options(ctx context.Context) (*OptionsResult, error) {
	dataset, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset snapshot")
	}

	return &OptionsResult{
		Snapshot: dataset.ID(),
		Options:  dataset.Options(),
	}, nil
}

// Views returns the configured preset views
func (uc *DatasetUseCase) Views() []model.View {
	return uc.views.Views
}

// ViewSeries runs the query of a configured preset view
func (uc *DatasetUseCase) ViewSeries(ctx context.Context, viewID string) (*SeriesResult, error) {
	view := uc.views.FindViewByID(viewID)
	if view == nil {
		return nil, goerr.Wrap(model.ErrViewNotFound, "unknown view",
			goerr.V("id", viewID))
	}
	return uc.Series(ctx, view.Selection)
}

// Refresh fetches the catalog again and swaps the snapshot. Queries that
// already hold the previous snapshot are unaffected.
func (uc *DatasetUseCase) Refresh(ctx context.Context) error {
	if uc.source == nil {
		return goerr.New("no feed source configured")
	}

	dataset, err := uc.source.Fetch(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to refresh catalog")
	}

	if err := uc.repo.Store(ctx, dataset); err != nil {
		return goerr.Wrap(err, "failed to store refreshed catalog")
	}

	ctxlog.From(ctx).Info("Catalog snapshot refreshed",
		"snapshot", dataset.ID(),
		"records", dataset.Len(),
	)
	return nil
}
