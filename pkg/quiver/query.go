package quiver

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams is a read-only view over a parsed query string. Keys are
// case-sensitive and may repeat; scalar lookups return the first occurrence.
type QueryParams struct {
	values url.Values
}

// ParseQuery parses a raw query string ("a=1&b=2&b=3", with or without a
// leading "?") into a QueryParams. Blank values are kept. A malformed query
// string yields a *ValidationError.
func ParseQuery(raw string) (QueryParams, error) {
	raw = strings.TrimPrefix(raw, "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return QueryParams{}, NewValidationError("", "malformed query string: %v", err)
	}
	return QueryParams{values: values}, nil
}

// Get returns the first value for key, or the empty string if the key is
// absent.
func (q QueryParams) Get(key string) string {
	return q.values.Get(key)
}

// GetDefault returns the first value for key, or def if the key is absent.
func (q QueryParams) GetDefault(key, def string) string {
	if !q.Has(key) {
		return def
	}
	return q.values.Get(key)
}

// Require returns the first value for key, or a *ValidationError naming the
// missing field.
func (q QueryParams) Require(key string) (string, error) {
	if !q.Has(key) {
		return "", NewValidationError(key, "missing required parameter")
	}
	return q.values.Get(key), nil
}

// GetBool returns the first value for key interpreted as a boolean, or def if
// the key is absent. "true", "1", "yes", and "on" (case-insensitive) are
// true; any other value is false. GetBool never fails.
func (q QueryParams) GetBool(key string, def bool) bool {
	if !q.Has(key) {
		return def
	}
	return truthy(q.values.Get(key))
}

// GetInt returns the first value for key as an integer, or def if the key is
// absent. A present but malformed value yields a *ValidationError.
func (q QueryParams) GetInt(key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	n, err := strconv.Atoi(q.values.Get(key))
	if err != nil {
		return 0, NewValidationError(key, "not a valid integer: %q", q.values.Get(key))
	}
	return n, nil
}

// GetList returns every value for key in the order they appeared, even when
// there is only one. An absent key yields nil.
func (q QueryParams) GetList(key string) []string {
	return q.values[key]
}

// Has reports whether key is present in the query string.
func (q QueryParams) Has(key string) bool {
	_, ok := q.values[key]
	return ok
}

// Keys returns all query parameter keys, unordered.
func (q QueryParams) Keys() []string {
	keys := make([]string, 0, len(q.values))
	for key := range q.values {
		keys = append(keys, key)
	}
	return keys
}

// ToMap returns a snapshot of the parsed parameters, mapping each key to a
// single string when it appeared once and to a []string when it repeated.
func (q QueryParams) ToMap() map[string]any {
	result := make(map[string]any, len(q.values))
	for key, vals := range q.values {
		if len(vals) == 1 {
			result[key] = vals[0]
		} else {
			result[key] = append([]string(nil), vals...)
		}
	}
	return result
}

// truthy implements the boolean wire convention shared by GetBool and the
// bool coercer.
func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
