package adapters

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAdapter implements Server for Gin.
type GinAdapter struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinAdapter wraps an existing Gin engine.
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates an adapter over a fresh Gin engine in release
// mode with panic recovery enabled.
func NewDefaultGinAdapter() *GinAdapter {
	gin.SetMode(gin.ReleaseMode)
	g := gin.New()
	g.Use(gin.Recovery())
	return &GinAdapter{engine: g}
}

// Mount registers h for GET requests on path.
func (ga *GinAdapter) Mount(path string, h http.Handler) {
	ga.engine.GET(path, gin.WrapH(h))
}

// Start starts the server.
func (ga *GinAdapter) Start(addr string) error {
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	err := ga.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the server gracefully.
func (ga *GinAdapter) Stop(ctx context.Context) error {
	if ga.server == nil {
		return nil
	}
	return ga.server.Shutdown(ctx)
}

// Name returns the adapter name.
func (ga *GinAdapter) Name() string { return "Gin" }

// GetEngine returns the underlying Gin engine.
func (ga *GinAdapter) GetEngine() *gin.Engine { return ga.engine }
