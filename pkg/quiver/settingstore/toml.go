// Package settingstore provides file-backed implementations of the
// quiver.Settings collaborator. All stores are total: a missing or
// mistyped key yields the requested type's zero value.
package settingstore

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// TOMLStore reads settings from a TOML file once at construction. Lookups
// use plain top-level keys.
type TOMLStore struct {
	values map[string]any
}

// NewTOML loads the TOML file at path.
func NewTOML(path string) (*TOMLStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTOML(data)
}

// ParseTOML builds a store from raw TOML bytes.
func ParseTOML(data []byte) (*TOMLStore, error) {
	values := make(map[string]any)
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return &TOMLStore{values: values}, nil
}

// GetString returns the string value for name.
func (s *TOMLStore) GetString(name string) string {
	switch v := s.values[name].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// GetInt returns the integer value for name.
func (s *TOMLStore) GetInt(name string) int {
	switch v := s.values[name].(type) {
	case int64:
		return int(v)
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
func (s *TOMLStore) GetBool(name string) bool {
	switch v := s.values[name].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// GetFloat returns the float value for name.
func (s *TOMLStore) GetFloat(name string) float64 {
	switch v := s.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
