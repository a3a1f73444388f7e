package quiver

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Arg is one query-string argument for URLFor. Arguments are serialized in
// the order the caller supplies them.
type Arg struct {
	Key   string
	Value any
}

// With builds an Arg.
func With(key string, value any) Arg {
	return Arg{Key: key, Value: value}
}

// URLFor builds a URL that dispatches back to the target route. The route
// selector is emitted first, then each argument in caller order, percent
// encoded, with list values repeating the key once per element.
//
// Every argument key must match a declared parameter by name or external
// key, otherwise URLFor fails with *RouterError so that a typo cannot
// produce a dead link. Settings-scoped parameters are silently dropped:
// their value is resolved from settings at dispatch time. Omitting a
// required parameter is not checked here; the resulting URL fails at
// dispatch instead.
func (r *Router) URLFor(target any, args ...Arg) (string, error) {
	route, err := r.FindRoute(target)
	if err != nil {
		return "", err
	}

	known := make(map[string]Param, len(route.Params)*2)
	for _, p := range route.Params {
		known[p.Name] = p
		known[p.queryKey()] = p
	}

	var sb strings.Builder
	sb.WriteString(r.baseURL)
	sb.WriteByte('?')
	sb.WriteString(url.QueryEscape(r.routeParam))
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(route.Name))

	for _, arg := range args {
		p, ok := known[arg.Key]
		if !ok {
			return "", NewRouterError("route %q has no parameter %q", route.Name, arg.Key)
		}
		if p.Scope == ScopeSettings {
			continue
		}
		key := url.QueryEscape(p.queryKey())
		for _, v := range splitValues(arg.Value) {
			sb.WriteByte('&')
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(stringifyValue(v)))
		}
	}
	return sb.String(), nil
}

// MustURLFor is like URLFor but panics on error.
func (r *Router) MustURLFor(target any, args ...Arg) string {
	u, err := r.URLFor(target, args...)
	if err != nil {
		panic(err)
	}
	return u
}

// splitValues flattens slice and array values into their elements so list
// parameters repeat the key on the wire.
func splitValues(v any) []any {
	switch vs := v.(type) {
	case []string:
		out := make([]any, len(vs))
		for i, s := range vs {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(vs))
		for i, n := range vs {
			out[i] = n
		}
		return out
	case []any:
		return vs
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case uuid.UUID:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
