package quiver

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context carries per-dispatch state into handlers: the parsed query, a
// request-scoped logger, the settings collaborator, and a URL builder bound
// to the active router. A fresh Context is created for every dispatch and is
// never shared across requests.
type Context struct {
	ctx       context.Context
	router    *Router
	route     *Route
	query     QueryParams
	logger    *zap.Logger
	requestID string
	dir       Directory
}

func newContext(ctx context.Context, r *Router, route *Route, query QueryParams) *Context {
	c := &Context{
		ctx:       ctx,
		router:    r,
		route:     route,
		query:     query,
		requestID: uuid.NewString(),
	}
	c.logger = r.logger.With(zap.String("request_id", c.requestID))
	if route != nil {
		c.logger = c.logger.With(zap.String("route", route.Name))
	}
	if r.dirFactory != nil {
		c.dir = r.dirFactory(c)
	}
	if c.dir == nil {
		c.dir = nopDirectory{}
	}
	return c
}

// Context returns the request-scoped context.Context.
func (c *Context) Context() context.Context { return c.ctx }

// Route returns the resolved route. It is nil when resolution itself failed
// and the Context was built only for error handling.
func (c *Context) Route() *Route { return c.route }

// Query returns the parsed query parameters for this dispatch.
func (c *Context) Query() QueryParams { return c.query }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *zap.Logger { return c.logger }

// Settings returns the settings collaborator configured on the router. When
// the router has none, an empty MapSettings stands in so lookups return type
// defaults instead of panicking.
func (c *Context) Settings() Settings {
	if c.router.settings == nil {
		return MapSettings{}
	}
	return c.router.settings
}

// RequestID returns the identifier assigned to this dispatch.
func (c *Context) RequestID() string { return c.requestID }

// Directory returns the listing collaborator for this dispatch.
func (c *Context) Directory() Directory { return c.dir }

// URLFor builds a self-URL back into the active router. See Router.URLFor.
func (c *Context) URLFor(target any, args ...Arg) (string, error) {
	return c.router.URLFor(target, args...)
}
