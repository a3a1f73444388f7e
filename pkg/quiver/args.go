package quiver

import "github.com/google/uuid"

// Args holds the bound, already-coerced arguments for a single dispatch.
// Every declared parameter of the resolved route is present; typed getters
// return the zero value for a name that was never declared or whose type
// does not match.
type Args struct {
	values map[string]any
}

// Get returns the raw bound value for name.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// String returns the bound string argument for name.
func (a Args) String(name string) string {
	v, _ := a.values[name].(string)
	return v
}

// Int returns the bound integer argument for name.
func (a Args) Int(name string) int {
	v, _ := a.values[name].(int)
	return v
}

// Bool returns the bound boolean argument for name.
func (a Args) Bool(name string) bool {
	v, _ := a.values[name].(bool)
	return v
}

// Float returns the bound float64 argument for name.
func (a Args) Float(name string) float64 {
	v, _ := a.values[name].(float64)
	return v
}

// UUID returns the bound uuid.UUID argument for name.
func (a Args) UUID(name string) uuid.UUID {
	v, _ := a.values[name].(uuid.UUID)
	return v
}

// Strings returns the bound string-list argument for name.
func (a Args) Strings(name string) []string {
	v, _ := a.values[name].([]string)
	return v
}

// Ints returns the bound integer-list argument for name.
func (a Args) Ints(name string) []int {
	v, _ := a.values[name].([]int)
	return v
}

// Slice returns the bound list argument for name when the element type has
// no dedicated getter (custom coercers).
func (a Args) Slice(name string) []any {
	v, _ := a.values[name].([]any)
	return v
}

// Len returns the number of bound arguments.
func (a Args) Len() int { return len(a.values) }
