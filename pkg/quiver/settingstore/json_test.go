package settingstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldran/quiver/pkg/quiver"
)

var _ quiver.Settings = (*JSONStore)(nil)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONStore_TypedGetters(t *testing.T) {
	path := writeJSON(t, `{"page_size": 25, "quality": "hd", "autoplay": true, "ratio": 1.5}`)
	store, err := NewJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 25, store.GetInt("page_size"))
	assert.Equal(t, "hd", store.GetString("quality"))
	assert.True(t, store.GetBool("autoplay"))
	assert.Equal(t, 1.5, store.GetFloat("ratio"))
}

func TestJSONStore_NestedKeys(t *testing.T) {
	path := writeJSON(t, `{"playback": {"quality": "sd"}}`)
	store, err := NewJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "sd", store.GetString("playback.quality"))
}

func TestJSONStore_TotalOnMissingKeys(t *testing.T) {
	path := writeJSON(t, `{}`)
	store, err := NewJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestJSONStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	store, err := NewJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("anything"))
}

func TestJSONStore_SetAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := NewJSON(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("quality", "hd"))
	require.NoError(t, store.Set("playback.offset", 120))
	assert.Equal(t, "hd", store.GetString("quality"))
	assert.Equal(t, 120, store.GetInt("playback.offset"))

	require.NoError(t, store.Save())

	reopened, err := NewJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "hd", reopened.GetString("quality"))
	assert.Equal(t, 120, reopened.GetInt("playback.offset"))
}

func TestNewJSON_InvalidContent(t *testing.T) {
	path := writeJSON(t, "{not json")
	_, err := NewJSON(path)
	assert.Error(t, err)
}
