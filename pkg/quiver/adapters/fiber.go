package adapters

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// FiberAdapter implements Server for Fiber v2.
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter wraps an existing Fiber app.
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates an adapter over a fresh Fiber app with
// panic recovery enabled.
func NewDefaultFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	return &FiberAdapter{app: app}
}

// Mount registers h for GET requests on path.
func (fa *FiberAdapter) Mount(path string, h http.Handler) {
	fa.app.Get(path, adaptor.HTTPHandler(h))
}

// Start starts the server.
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the server gracefully.
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name.
func (fa *FiberAdapter) Name() string { return "Fiber" }

// GetApp returns the underlying Fiber app.
func (fa *FiberAdapter) GetApp() *fiber.App { return fa.app }
