package quiver

import "fmt"

// Error is the marker interface implemented by every error type this package
// produces. An error handler registered for Error catches routing,
// validation, and configuration failures alike.
type Error interface {
	error
	quiverError()
}

// RouterError reports a routing problem: an unknown route name, a duplicate
// registration, a second root route, or an unknown parameter passed to URLFor.
type RouterError struct {
	Message string
}

// NewRouterError creates a RouterError with a formatted message.
func NewRouterError(format string, args ...any) *RouterError {
	return &RouterError{Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *RouterError) Error() string { return e.Message }

func (e *RouterError) quiverError() {}

// ValidationError reports a query-string value that failed a required or
// coercion check. Field names the offending parameter.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("parameter %q: %s", e.Field, e.Message)
}

func (e *ValidationError) quiverError() {}

// ConfigurationError reports a parameter table that cannot be turned into
// binding rules. It indicates a programming defect, is always fatal at
// registration time, and is never routed through registered error handlers.
type ConfigurationError struct {
	Message string
	Err     error
}

// NewConfigurationError creates a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) quiverError() {}
