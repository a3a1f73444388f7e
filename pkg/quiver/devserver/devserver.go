// Package devserver exposes a plugin router over HTTP as a debugging aid.
// It is not part of the dispatch core: in production the only transport is
// the synthetic query string handed to the process by the host. The server
// renders each dispatch's directory listing as JSON so routes can be walked
// in a browser, and publishes dispatch metrics.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/veldran/quiver/pkg/quiver"
	"github.com/veldran/quiver/pkg/quiver/adapters"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds development server settings.
type Config struct {
	// Addr is the listen address (default ":8088").
	Addr string

	// Path is the route all plugin dispatches are served under
	// (default "/plugin").
	Path string

	// MetricsPath is where prometheus metrics are exposed
	// (default "/metrics").
	MetricsPath string

	// Logger receives structured request logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// NoColor disables the colored per-request console line.
	NoColor bool
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8088"
	}
	if c.Path == "" {
		c.Path = "/plugin"
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Server serves a frozen router over the given adapter.
type Server struct {
	router  *quiver.Router
	adapter adapters.Server
	cfg     Config
	metrics *metrics
}

// New wires the router into the adapter and freezes it. The router's
// directory factory is replaced so that handler output is captured per
// request; attach the router to a development server only when it is not
// simultaneously driven by a host process.
func New(router *quiver.Router, adapter adapters.Server, cfg Config) *Server {
	cfg.applyDefaults()
	s := &Server{
		router:  router,
		adapter: adapter,
		cfg:     cfg,
		metrics: newMetrics(),
	}

	router.SetDirectoryFactory(directoryFromContext)
	router.Freeze()

	adapter.Mount(cfg.Path, http.HandlerFunc(s.serveDispatch))
	adapter.Mount(cfg.MetricsPath, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return s
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.cfg.Logger.Info("development server listening",
		zap.String("addr", s.cfg.Addr),
		zap.String("framework", s.adapter.Name()),
		zap.String("path", s.cfg.Path))
	if !s.cfg.NoColor {
		fmt.Printf("%s http://localhost%s%s (%s)\n",
			color.GreenString("listening on"), s.cfg.Addr, s.cfg.Path, s.adapter.Name())
	}
	return s.adapter.Start(s.cfg.Addr)
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.adapter.Stop(ctx)
}

type listItemJSON struct {
	Label    string            `json:"label"`
	URL      string            `json:"url,omitempty"`
	Thumb    string            `json:"thumb,omitempty"`
	IsFolder bool              `json:"is_folder"`
	Info     map[string]string `json:"info,omitempty"`
}

type responseJSON struct {
	Items []listItemJSON `json:"items"`
	Ended bool           `json:"ended"`
	Error *errorJSON     `json:"error,omitempty"`
}

type errorJSON struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (s *Server) serveDispatch(w http.ResponseWriter, r *http.Request) {
	col := &collector{}
	ctx := context.WithValue(r.Context(), collectorKey{}, col)

	start := time.Now()
	err := s.router.Dispatch(ctx, r.URL.RawQuery)
	elapsed := time.Since(start)

	status, outcome := classify(err)
	s.metrics.observe(outcome, elapsed)

	resp := responseJSON{Items: make([]listItemJSON, 0, len(col.items)), Ended: col.ended}
	for _, item := range col.items {
		resp.Items = append(resp.Items, listItemJSON{
			Label:    item.Label,
			URL:      item.URL,
			Thumb:    item.Thumb,
			IsFolder: item.IsFolder,
			Info:     item.Info,
		})
	}
	if err != nil {
		resp.Error = errorToJSON(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		s.cfg.Logger.Warn("failed to encode response", zap.Error(encodeErr))
	}

	s.logRequest(r, status, elapsed, err)
}

func (s *Server) logRequest(r *http.Request, status int, elapsed time.Duration, err error) {
	s.cfg.Logger.Info("dispatch",
		zap.String("query", r.URL.RawQuery),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
		zap.Error(err))
	if s.cfg.NoColor {
		return
	}
	statusText := fmt.Sprintf("%d", status)
	switch {
	case status >= 500:
		statusText = color.RedString(statusText)
	case status >= 400:
		statusText = color.YellowString(statusText)
	default:
		statusText = color.GreenString(statusText)
	}
	fmt.Printf("%s %s ?%s (%s)\n", statusText, color.CyanString("GET"), r.URL.RawQuery, elapsed)
}

func classify(err error) (status int, outcome string) {
	if err == nil {
		return http.StatusOK, "ok"
	}
	var validationErr *quiver.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "validation_error"
	}
	var routerErr *quiver.RouterError
	if errors.As(err, &routerErr) {
		return http.StatusNotFound, "router_error"
	}
	return http.StatusInternalServerError, "error"
}

func errorToJSON(err error) *errorJSON {
	var validationErr *quiver.ValidationError
	if errors.As(err, &validationErr) {
		return &errorJSON{Kind: "validation", Field: validationErr.Field, Message: validationErr.Message}
	}
	var routerErr *quiver.RouterError
	if errors.As(err, &routerErr) {
		return &errorJSON{Kind: "router", Message: routerErr.Message}
	}
	return &errorJSON{Kind: "internal", Message: err.Error()}
}
