package quiver

import (
	"errors"
	"reflect"
)

// ErrorHandler consumes an error raised during resolving, binding, or
// handler execution. Its return value becomes the dispatch outcome; errors
// it returns (or raises by failing itself) propagate unguarded.
type ErrorHandler func(c *Context, err error) error

type errorHandlerEntry struct {
	// target is the registered error type; nil for predicate registrations.
	target  reflect.Type
	match   func(error) bool
	handler ErrorHandler
}

// RegisterErrorHandler associates h with error type E. Matching uses
// errors.As, so wrapped errors are found and an interface E catches every
// implementation, which is how a handler for a broad category covers its
// specific errors. Handlers are tried in registration order and the first
// match wins; re-registering the same E replaces the earlier handler in
// place.
func RegisterErrorHandler[E error](r *Router, h func(c *Context, err E) error) {
	target := reflect.TypeOf((*E)(nil)).Elem()
	entry := errorHandlerEntry{
		target: target,
		match: func(err error) bool {
			var e E
			return errors.As(err, &e)
		},
		handler: func(c *Context, err error) error {
			var e E
			errors.As(err, &e)
			return h(c, e)
		},
	}
	r.addErrorHandler(entry)
}

// RegisterErrorMatcher associates h with an arbitrary predicate. Predicate
// registrations are never replaced, only appended.
func (r *Router) RegisterErrorMatcher(match func(error) bool, h ErrorHandler) {
	r.addErrorHandler(errorHandlerEntry{match: match, handler: h})
}

func (r *Router) addErrorHandler(entry errorHandlerEntry) {
	if entry.target != nil {
		for i, existing := range r.errHandlers {
			if existing.target == entry.target {
				r.errHandlers[i] = entry
				return
			}
		}
	}
	r.errHandlers = append(r.errHandlers, entry)
}

// handleError routes err through the registered handlers. A
// *ConfigurationError is a programming defect and is returned unchanged so
// no handler can swallow it.
func (r *Router) handleError(c *Context, err error) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	for _, entry := range r.errHandlers {
		if entry.match(err) {
			return entry.handler(c, err)
		}
	}
	return err
}
