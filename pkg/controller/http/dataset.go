package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
	"github.com/secmon-lab/kevtrend/pkg/usecase"
)

// datasetHandler serves the filter/aggregate API
type datasetHandler struct {
	uc usecase.Dataset
}

func newDatasetHandler(uc usecase.Dataset) *datasetHandler {
	return &datasetHandler{uc: uc}
}

// parseSelection derives a Selection from query parameters. Each filter
// parameter may repeat and may carry comma-separated values; both forms
// match what the frontend multi-selects submit.
func parseSelection(values url.Values) (model.Selection, error) {
	var sel model.Selection

	for _, raw := range splitParams(values["year"]) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return model.Selection{}, goerr.Wrap(err, "invalid year parameter",
				goerr.V("year", raw))
		}
		sel.Years = append(sel.Years, year)
	}

	sel.Vendors = splitParams(values["vendor"])
	sel.CWEs = splitParams(values["cwe"])

	mode, err := types.ParseRansomwareMode(values.Get("ransomware"))
	if err != nil {
		return model.Selection{}, err
	}
	sel.Ransomware = mode

	return sel, nil
}

func splitParams(params []string) []string {
	var result []string
	for _, param := range params {
		for _, part := range strings.Split(param, ",") {
			if v := strings.TrimSpace(part); v != "" {
				result = append(result, v)
			}
		}
	}
	return result
}

// HandleSeries handles GET /api/series
func (h *datasetHandler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	selection, err := parseSelection(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	result, err := h.uc.Series(ctx, selection)
	if err != nil {
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// HandleOptions handles GET /api/options
func (h *datasetHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.uc.Options(ctx)
	if err != nil {
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// HandleViews handles GET /api/views
func (h *datasetHandler) HandleViews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views := h.uc.Views()
	if views == nil {
		views = []model.View{}
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"views": views,
	})
}

// HandleViewSeries handles GET /api/views/{viewID}/series
func (h *datasetHandler) HandleViewSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID := chi.URLParam(r, "viewID")

	result, err := h.uc.ViewSeries(ctx, viewID)
	if err != nil {
		if errors.Is(err, model.ErrViewNotFound) {
			writeError(ctx, w, err, http.StatusNotFound)
			return
		}
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}
