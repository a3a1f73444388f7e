package quiver

import "strconv"

// Settings supplies values for settings-scoped parameters. Implementations
// are total: a missing key yields the type's zero value, never an error.
type Settings interface {
	GetString(name string) string
	GetInt(name string) int
	GetBool(name string) bool
	GetFloat(name string) float64
}

// MapSettings is an in-memory Settings implementation backed by a plain map,
// mainly useful in tests and examples.
type MapSettings map[string]any

// GetString returns the string value for name, converting scalars where
// reasonable.
func (m MapSettings) GetString(name string) string {
	switch v := m[name].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

// GetInt returns the integer value for name.
func (m MapSettings) GetInt(name string) int {
	switch v := m[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// GetBool returns the boolean value for name.
func (m MapSettings) GetBool(name string) bool {
	switch v := m[name].(type) {
	case bool:
		return v
	case string:
		return truthy(v)
	default:
		return false
	}
}

// GetFloat returns the float value for name.
func (m MapSettings) GetFloat(name string) float64 {
	switch v := m[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
