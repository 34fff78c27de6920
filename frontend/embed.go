package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the frontend assets
//
//go:embed all:dist
var FS embed.FS

// GetHTTPFS returns the embedded frontend filesystem for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "dist")
	if err != nil {
		return nil, err
	}

	if !isFrontendBuilt(sub) {
		return nil, &fs.PathError{Op: "stat", Path: "index.html", Err: fs.ErrNotExist}
	}

	return http.FS(sub), nil
}

// isFrontendBuilt checks if the frontend assets are present
func isFrontendBuilt(fsys fs.FS) bool {
	if _, err := fs.Stat(fsys, "index.html"); err != nil {
		return false
	}
	return true
}
