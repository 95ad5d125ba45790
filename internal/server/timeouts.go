package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Pages may refetch their source before rendering.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second

	watchDebounce = 250 * time.Millisecond
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
