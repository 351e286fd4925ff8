package server

import (
	"context"

	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

// Catalog executes catalog requests. *client.Client satisfies it.
type Catalog interface {
	Do(ctx context.Context, req client.Request) (client.Result, error)
}

// ReadyCheck reports whether a dependency is reachable.
type ReadyCheck func(ctx context.Context) error
