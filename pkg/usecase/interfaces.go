package usecase

import (
	"context"

	"github.com/secmon-lab/kevtrend/pkg/domain/model"
)

// Dataset defines the query interface consumed by the HTTP controller
type Dataset interface {
	// Series runs one filter-and-aggregate query
	Series(ctx context.Context, selection model.Selection) (*SeriesResult, error)

	// Options returns the distinct filter values of the current snapshot
	Options(ctx context.Context) (*OptionsResult, error)

	// Views returns the configured preset views
	Views() []model.View

	// ViewSeries runs the query of a configured preset view
	ViewSeries(ctx context.Context, viewID string) (*SeriesResult, error)
}
