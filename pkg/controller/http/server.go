package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/frontend"
	"github.com/secmon-lab/kevtrend/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router    chi.Router
	datasetUC usecase.Dataset
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, datasetUC usecase.Dataset) (*Server, error) {
	if datasetUC == nil {
		return nil, goerr.New("dataset use case is required")
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	handler := newDatasetHandler(datasetUC)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/series", handler.HandleSeries)
		r.Get("/options", handler.HandleOptions)
		r.Route("/views", func(r chi.Router) {
			r.Get("/", handler.HandleViews)
			r.Get("/{viewID}/series", handler.HandleViewSeries)
		})
	})

	// Frontend routes (embedded single-page chart UI)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		fileServer := http.FileServer(fs)
		router.Handle("/*", fileServer)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:    router,
		datasetUC: datasetUC,
	}

	return server, nil
}

// Router returns the chi router, mainly for tests
func (s *Server) Router() chi.Router {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "kevtrend",
	})
}

// handleFallbackHome handles the root path when the frontend is not embedded
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>kevtrend</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #2a2a2a;
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
        }
        a { color: #9ecbff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>kevtrend</h1>
        <p>Known Exploited Vulnerabilities trend viewer</p>
        <p>Frontend is not embedded in this build. The JSON API is available at <a href="/api/series">/api/series</a>.</p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes a JSON response
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int) {
	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	writeJSON(ctx, w, status, map[string]string{
		"error": message,
	})
}
