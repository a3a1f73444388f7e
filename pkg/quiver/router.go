package quiver

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// DefaultRouteParam is the reserved query-string key that selects the route.
const DefaultRouteParam = "r"

// HandlerFunc is a route handler. The bound, coerced arguments arrive in
// args; ctx carries the per-dispatch state. Side effects (building a
// listing, playing an item) are the handler's responsibility; the router
// does not interpret a nil return beyond "completed".
type HandlerFunc func(ctx *Context, args Args) error

// Route is a named binding between an external selector and a handler. The
// parameter table is validated and frozen at registration.
type Route struct {
	Name    string
	Handler HandlerFunc
	IsRoot  bool
	Params  []Param
}

type routeConfig struct {
	name   string
	params []Param
	isRoot bool
}

// RouteOption configures a single route registration.
type RouteOption func(*routeConfig)

// WithName overrides the route name derived from the handler's function
// symbol. Names end up inside generated URLs, so they must stay stable
// across releases once published.
func WithName(name string) RouteOption {
	return func(c *routeConfig) { c.name = name }
}

// WithParams declares the route's parameter table.
func WithParams(params ...Param) RouteOption {
	return func(c *routeConfig) { c.params = append(c.params, params...) }
}

// AsRoot marks the route as the one dispatched when the query string carries
// no route selector. At most one route may be root.
func AsRoot() RouteOption {
	return func(c *routeConfig) { c.isRoot = true }
}

// Option configures a Router.
type Option func(*Router)

// WithRouteParam changes the reserved route-selector key.
func WithRouteParam(name string) Option {
	return func(r *Router) { r.routeParam = name }
}

// WithBaseURL sets the base URL ("plugin://plugin.id/") prepended to every
// URL built by URLFor.
func WithBaseURL(base string) Option {
	return func(r *Router) { r.baseURL = base }
}

// WithLogger sets the logger handlers receive through the Context.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithSettings sets the collaborator consulted for settings-scoped
// parameters.
func WithSettings(s Settings) Option {
	return func(r *Router) { r.settings = s }
}

// WithDirectoryFactory sets the factory producing the Directory collaborator
// for each dispatch.
func WithDirectoryFactory(f DirectoryFactory) Option {
	return func(r *Router) { r.dirFactory = f }
}

// Router maps query strings to registered handlers, binds their arguments,
// and builds URLs back to them. Registration happens once at startup;
// dispatching is strictly sequential and a Router must be frozen before it
// is shared with a concurrent server variant.
type Router struct {
	routeParam string
	baseURL    string
	logger     *zap.Logger
	settings   Settings
	dirFactory DirectoryFactory

	routes      map[string]*Route
	byHandler   map[uintptr]*Route
	root        *Route
	errHandlers []errorHandlerEntry
	frozen      bool
}

// NewRouter creates an empty Router.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		routeParam: DefaultRouteParam,
		logger:     zap.NewNop(),
		routes:     make(map[string]*Route),
		byHandler:  make(map[uintptr]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteParam returns the reserved route-selector key.
func (r *Router) RouteParam() string { return r.routeParam }

// SetDirectoryFactory replaces the Directory factory. It must be called
// before Freeze.
func (r *Router) SetDirectoryFactory(f DirectoryFactory) {
	r.dirFactory = f
}

// Freeze marks the router read-only. Further registrations fail with a
// *RouterError. A frozen router is safe for concurrent dispatch as long as
// handlers themselves are.
func (r *Router) Freeze() { r.frozen = true }

// Register derives a stable name for handler (its import-path-qualified
// function symbol unless WithName overrides it), validates the parameter
// table, and inserts the route. A duplicate name or a second root route
// fails with *RouterError; an invalid parameter table fails with
// *ConfigurationError.
func (r *Router) Register(handler HandlerFunc, opts ...RouteOption) (*Route, error) {
	if r.frozen {
		return nil, NewRouterError("router is frozen; routes must be registered at startup")
	}
	if handler == nil {
		return nil, NewRouterError("cannot register a nil handler")
	}

	var cfg routeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	name := cfg.name
	if name == "" {
		name = handlerName(handler)
	}
	if _, exists := r.routes[name]; exists {
		return nil, NewRouterError("duplicate route name %q", name)
	}
	if cfg.isRoot && r.root != nil {
		return nil, NewRouterError("root route already registered as %q", r.root.Name)
	}

	seen := make(map[string]struct{}, len(cfg.params))
	params := make([]Param, len(cfg.params))
	for i, p := range cfg.params {
		if err := p.finalize(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.Name]; dup {
			return nil, NewConfigurationError("route %q: duplicate parameter %q", name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Scope == ScopeSettings && r.settings == nil {
			return nil, NewConfigurationError(
				"route %q: parameter %q is settings-scoped but the router has no settings collaborator", name, p.Name)
		}
		params[i] = p
	}

	route := &Route{
		Name:    name,
		Handler: handler,
		IsRoot:  cfg.isRoot,
		Params:  params,
	}
	r.routes[name] = route
	r.byHandler[handlerPointer(handler)] = route
	if cfg.isRoot {
		r.root = route
	}
	return route, nil
}

// MustRegister is like Register but panics on error. Intended for the
// startup path where a registration failure is a programming defect.
func (r *Router) MustRegister(handler HandlerFunc, opts ...RouteOption) *Route {
	route, err := r.Register(handler, opts...)
	if err != nil {
		panic(err)
	}
	return route
}

// FindRoute resolves a route from either its string name or a handler
// reference previously passed to Register.
func (r *Router) FindRoute(target any) (*Route, error) {
	switch t := target.(type) {
	case string:
		route, ok := r.routes[t]
		if !ok {
			return nil, NewRouterError("unknown route name %q", t)
		}
		return route, nil
	case *Route:
		if t == nil {
			return nil, NewRouterError("nil route")
		}
		if r.routes[t.Name] != t {
			return nil, NewRouterError("route %q is not registered on this router", t.Name)
		}
		return t, nil
	case HandlerFunc:
		return r.findByHandler(t)
	case func(*Context, Args) error:
		return r.findByHandler(t)
	default:
		return nil, NewRouterError("cannot resolve a route from %T", target)
	}
}

func (r *Router) findByHandler(h HandlerFunc) (*Route, error) {
	route, ok := r.byHandler[handlerPointer(h)]
	if !ok {
		return nil, NewRouterError("handler %s is not a registered route", handlerName(h))
	}
	return route, nil
}

// Routes returns all registered routes.
func (r *Router) Routes() []*Route {
	routes := make([]*Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	return routes
}

// Root returns the root route, or nil if none was registered.
func (r *Router) Root() *Route { return r.root }

// Dispatch resolves rawQuery to a route, binds its arguments, and invokes
// the handler. Binding is eager and total: the handler is not called unless
// every declared parameter bound successfully. Errors from any stage run
// through the registered error handlers; an unmatched error is returned
// unchanged.
func (r *Router) Dispatch(ctx context.Context, rawQuery string) error {
	query, err := ParseQuery(rawQuery)
	if err != nil {
		return r.handleError(newContext(ctx, r, nil, QueryParams{}), err)
	}

	route, err := r.resolve(query)
	if err != nil {
		return r.handleError(newContext(ctx, r, nil, query), err)
	}

	c := newContext(ctx, r, route, query)
	args, err := r.bind(route, query)
	if err != nil {
		return r.handleError(c, err)
	}

	c.logger.Debug("dispatching", zap.Int("args", args.Len()))
	if err := route.Handler(c, args); err != nil {
		return r.handleError(c, err)
	}
	return nil
}

func (r *Router) resolve(query QueryParams) (*Route, error) {
	name := query.Get(r.routeParam)
	if name == "" {
		if r.root == nil {
			return nil, NewRouterError("no route selector in query string and no root route registered")
		}
		return r.root, nil
	}
	route, ok := r.routes[name]
	if !ok {
		return nil, NewRouterError("unknown route name %q", name)
	}
	return route, nil
}

func (r *Router) bind(route *Route, query QueryParams) (Args, error) {
	values := make(map[string]any, len(route.Params))
	for _, p := range route.Params {
		v, err := r.bindParam(p, query)
		if err != nil {
			return Args{}, err
		}
		values[p.Name] = v
	}
	return Args{values: values}, nil
}

func (r *Router) bindParam(p Param, query QueryParams) (any, error) {
	if p.Scope == ScopeSettings {
		return r.bindFromSettings(p)
	}

	key := p.queryKey()
	if p.List {
		return bindList(p, query.GetList(key))
	}

	if !query.Has(key) {
		if p.HasDefault {
			return p.Default, nil
		}
		return nil, NewValidationError(p.Name, "missing required parameter")
	}
	v, err := p.Coerce(query.Get(key))
	if err != nil {
		return nil, NewValidationError(p.Name, "invalid value %q: %v", query.Get(key), err)
	}
	return v, nil
}

func bindList(p Param, raw []string) (any, error) {
	if len(raw) == 0 {
		if p.HasDefault {
			return p.Default, nil
		}
		if p.Required() {
			return nil, NewValidationError(p.Name, "missing required parameter")
		}
	}

	coerced := make([]any, len(raw))
	for i, s := range raw {
		v, err := p.Coerce(s)
		if err != nil {
			return nil, NewValidationError(p.Name, "invalid value %q: %v", s, err)
		}
		coerced[i] = v
	}

	// Collapse into a concretely typed slice so Args getters work.
	switch p.Type {
	case TypeString:
		out := make([]string, len(coerced))
		for i, v := range coerced {
			out[i] = v.(string)
		}
		return out, nil
	case TypeInt:
		out := make([]int, len(coerced))
		for i, v := range coerced {
			out[i] = v.(int)
		}
		return out, nil
	default:
		return coerced, nil
	}
}

func (r *Router) bindFromSettings(p Param) (any, error) {
	key := p.queryKey()
	switch p.Type {
	case TypeInt:
		return r.settings.GetInt(key), nil
	case TypeBool:
		return r.settings.GetBool(key), nil
	case TypeFloat:
		return r.settings.GetFloat(key), nil
	case TypeString:
		return r.settings.GetString(key), nil
	default:
		v, err := p.Coerce(r.settings.GetString(key))
		if err != nil {
			return nil, NewValidationError(p.Name, "invalid settings value: %v", err)
		}
		return v, nil
	}
}

// handlerName returns the import-path-qualified symbol of a handler, used as
// the default route name. Method values carry a "-fm" suffix that is
// stripped so the name stays stable.
func handlerName(h HandlerFunc) string {
	name := runtime.FuncForPC(reflect.ValueOf(h).Pointer()).Name()
	return strings.TrimSuffix(name, "-fm")
}

func handlerPointer(h HandlerFunc) uintptr {
	return reflect.ValueOf(h).Pointer()
}
