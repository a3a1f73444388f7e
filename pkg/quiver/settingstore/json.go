package settingstore

import (
	"errors"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONStore reads and writes settings in a JSON file. Unlike TOMLStore it is
// writable, which suits persisted user state (last selected quality, login
// tokens) that handlers update between runs. Keys use gjson path notation,
// so nested settings ("playback.quality") work.
type JSONStore struct {
	path string
	data []byte
}

// NewJSON opens the JSON settings file at path. A missing file starts an
// empty store; Save creates it.
func NewJSON(path string) (*JSONStore, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte("{}")
	} else if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("settings file is not valid JSON: " + path)
	}
	return &JSONStore{path: path, data: data}, nil
}

// GetString returns the string value for name.
func (s *JSONStore) GetString(name string) string {
	r := s.result(name)
	if !r.Exists() {
		return ""
	}
	return r.String()
}

// GetInt returns the integer value for name.
func (s *JSONStore) GetInt(name string) int {
	return int(s.result(name).Int())
}

// GetBool returns the boolean value for name.
func (s *JSONStore) GetBool(name string) bool {
	return s.result(name).Bool()
}

// GetFloat returns the float value for name.
func (s *JSONStore) GetFloat(name string) float64 {
	return s.result(name).Float()
}

// Set updates a setting in memory. Call Save to persist.
func (s *JSONStore) Set(name string, value any) error {
	data, err := sjson.SetBytes(s.data, name, value)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// Save writes the settings back to disk.
func (s *JSONStore) Save() error {
	return os.WriteFile(s.path, s.data, 0o644)
}

func (s *JSONStore) result(name string) gjson.Result {
	return gjson.GetBytes(s.data, name)
}
