// Package adapters exposes a dispatcher over HTTP through interchangeable
// web frameworks. The development server mounts plain http.Handler values;
// each adapter translates them into its framework's handler type and owns
// the server lifecycle.
package adapters

import (
	"context"
	"net/http"
)

// Server is the surface the development server needs from a web framework.
type Server interface {
	// Mount registers h for GET requests on path.
	Mount(path string, h http.Handler)

	// Start blocks serving on addr until Stop is called or the listener
	// fails.
	Start(addr string) error

	// Stop shuts the server down gracefully.
	Stop(ctx context.Context) error

	// Name identifies the underlying framework.
	Name() string
}
