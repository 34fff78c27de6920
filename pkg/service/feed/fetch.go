package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/interfaces"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
)

// DefaultCatalogURL is the CISA KEV catalog CSV endpoint
const DefaultCatalogURL = "https://www.cisa.gov/sites/default/files/csv/known_exploited_vulnerabilities.csv"

// HTTPSource fetches the catalog CSV over HTTP
type HTTPSource struct {
	url    string
	client *http.Client
}

var _ interfaces.FeedSource = (*HTTPSource)(nil)

// NewHTTPSource creates a feed source for the given catalog URL.
// An empty URL falls back to the CISA endpoint.
func NewHTTPSource(url string) *HTTPSource {
	if url == "" {
		url = DefaultCatalogURL
	}
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Fetch retrieves and decodes the current catalog
func (s *HTTPSource) Fetch(ctx context.Context) (*model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build catalog request",
			goerr.V("url", s.url))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch catalog",
			goerr.V("url", s.url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected catalog response",
			goerr.V("url", s.url),
			goerr.V("status", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog response",
			goerr.V("url", s.url))
	}

	result, err := Decode(data)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Fetched KEV catalog",
		"url", s.url,
		"records", result.Dataset.Len(),
		"dropped", result.Dropped,
	)

	return result.Dataset, nil
}

// FileSource reads the catalog CSV from a local path on every Fetch
type FileSource struct {
	path string
}

var _ interfaces.FeedSource = (*FileSource)(nil)

// NewFileSource creates a feed source backed by a local CSV file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch decodes the catalog from the configured file
func (s *FileSource) Fetch(ctx context.Context) (*model.Dataset, error) {
	result, err := LoadFile(s.path)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("Loaded KEV catalog",
		"path", s.path,
		"records", result.Dataset.Len(),
		"dropped", result.Dropped,
	)

	return result.Dataset, nil
}
