package server

import (
	"context"

	"github.com/preston-bernstein/cfp-rankings-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Watcher refreshes sources when their data files change on disk.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}
