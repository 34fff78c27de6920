package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrDatasetNotLoaded = goerr.New("dataset not loaded")
	ErrViewNotFound     = goerr.New("view not found")
)
