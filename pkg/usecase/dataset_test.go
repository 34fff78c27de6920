package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
	"github.com/secmon-lab/kevtrend/pkg/repository"
	"github.com/secmon-lab/kevtrend/pkg/usecase"
)

// stubSource returns a fixed dataset or error
type stubSource struct {
	dataset *model.Dataset
	err     error
}

func (s *stubSource) Fetch(ctx context.Context) (*model.Dataset, error) {
	return s.dataset, s.err
}

func newLoadedRepo(t *testing.T) (context.Context, *usecase.DatasetUseCase) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.Store(ctx, model.NewDataset(scenarioRecords())))
	return ctx, usecase.NewDataset(repo, nil, nil)
}

func TestDatasetSeries(t *testing.T) {
	ctx, uc := newLoadedRepo(t)

	t.Run("aggregates over the current snapshot", func(t *testing.T) {
		result, err := uc.Series(ctx, model.Selection{})
		gt.NoError(t, err)
		gt.NotEqual(t, result.Snapshot.String(), "")
		gt.Equal(t, result.Series.Total(), 3)
	})

	t.Run("rejects invalid selections", func(t *testing.T) {
		_, err := uc.Series(ctx, model.Selection{Ransomware: types.RansomwareMode("bogus")})
		gt.Error(t, err)
	})

	t.Run("fails before a dataset is loaded", func(t *testing.T) {
		empty := usecase.NewDataset(repository.NewMemory(), nil, nil)
		_, err := empty.Series(ctx, model.Selection{})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrDatasetNotLoaded))
	})
}

func TestDatasetOptions(t *testing.T) {
	ctx, uc := newLoadedRepo(t)

	result, err := uc.Options(ctx)
	gt.NoError(t, err)
	gt.Equal(t, result.Options.Years, []int{2023})
	gt.Equal(t, result.Options.Vendors, []string{"Acme", "Globex"})
	gt.Equal(t, result.Options.CWEs, []string{"CWE-79", "CWE-89"})
}

func TestDatasetViews(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.Store(ctx, model.NewDataset(scenarioRecords())))

	views := &model.ViewsConfig{
		Views: []model.View{
			{
				ID:        "ransomware",
				Name:      "Ransomware-linked",
				Selection: model.Selection{Ransomware: types.RansomwareKnown},
			},
		},
	}
	uc := usecase.NewDataset(repo, nil, views)

	t.Run("lists configured views", func(t *testing.T) {
		gt.Equal(t, len(uc.Views()), 1)
		gt.Equal(t, uc.Views()[0].ID, "ransomware")
	})

	t.Run("runs a view's selection", func(t *testing.T) {
		result, err := uc.ViewSeries(ctx, "ransomware")
		gt.NoError(t, err)
		gt.Equal(t, result.Series.Total(), 2)
	})

	t.Run("unknown view is an error", func(t *testing.T) {
		_, err := uc.ViewSeries(ctx, "missing")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrViewNotFound))
	})

	t.Run("nil views config lists nothing", func(t *testing.T) {
		bare := usecase.NewDataset(repo, nil, nil)
		gt.Equal(t, len(bare.Views()), 0)
	})
}

func TestDatasetRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps the snapshot", func(t *testing.T) {
		repo := repository.NewMemory()
		gt.NoError(t, repo.Store(ctx, model.NewDataset(nil)))

		next := model.NewDataset([]model.Record{
			{CVEID: "CVE-2025-0001", DateAdded: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
		})
		uc := usecase.NewDataset(repo, &stubSource{dataset: next}, nil)

		gt.NoError(t, uc.Refresh(ctx))

		result, err := uc.Series(ctx, model.Selection{})
		gt.NoError(t, err)
		gt.Equal(t, result.Snapshot, next.ID())
		gt.Equal(t, result.Series.Total(), 1)
	})

	t.Run("fetch failure keeps the old snapshot", func(t *testing.T) {
		repo := repository.NewMemory()
		current := model.NewDataset(scenarioRecords())
		gt.NoError(t, repo.Store(ctx, current))

		uc := usecase.NewDataset(repo, &stubSource{err: errors.New("feed down")}, nil)
		gt.Error(t, uc.Refresh(ctx))

		result, err := uc.Series(ctx, model.Selection{})
		gt.NoError(t, err)
		gt.Equal(t, result.Snapshot, current.ID())
	})

	t.Run("refresh without a source is an error", func(t *testing.T) {
		uc := usecase.NewDataset(repository.NewMemory(), nil, nil)
		gt.Error(t, uc.Refresh(ctx))
	})
}
