package adapters

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// EchoAdapter implements Server for Echo v4.
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter wraps an existing Echo instance.
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates an adapter over a fresh Echo instance with
// panic recovery enabled.
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	return &EchoAdapter{engine: e}
}

// Mount registers h for GET requests on path.
func (ea *EchoAdapter) Mount(path string, h http.Handler) {
	ea.engine.GET(path, echo.WrapHandler(h))
}

// Start starts the server.
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server gracefully.
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name.
func (ea *EchoAdapter) Name() string { return "Echo" }

// GetEngine returns the underlying Echo instance.
func (ea *EchoAdapter) GetEngine() *echo.Echo { return ea.engine }
