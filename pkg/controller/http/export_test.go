package http

// Export internals for testing
var ParseSelection = parseSelection
