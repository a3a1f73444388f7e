package settingstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldran/quiver/pkg/quiver"
)

var _ quiver.Settings = (*TOMLStore)(nil)

const sampleTOML = `
page_size = 25
quality = "hd"
autoplay = true
ratio = 1.5
`

func TestTOMLStore_TypedGetters(t *testing.T) {
	store, err := ParseTOML([]byte(sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 25, store.GetInt("page_size"))
	assert.Equal(t, "hd", store.GetString("quality"))
	assert.True(t, store.GetBool("autoplay"))
	assert.Equal(t, 1.5, store.GetFloat("ratio"))
}

func TestTOMLStore_TotalOnMissingKeys(t *testing.T) {
	store, err := ParseTOML([]byte(sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 0, store.GetInt("missing"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestTOMLStore_CrossTypeConversions(t *testing.T) {
	store, err := ParseTOML([]byte("n = 42\ns = \"7\"\nb = \"true\""))
	require.NoError(t, err)

	assert.Equal(t, "42", store.GetString("n"))
	assert.Equal(t, 7, store.GetInt("s"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, 42.0, store.GetFloat("n"))
}

func TestNewTOML_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	store, err := NewTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 25, store.GetInt("page_size"))
}

func TestNewTOML_MissingFile(t *testing.T) {
	_, err := NewTOML(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestParseTOML_Invalid(t *testing.T) {
	_, err := ParseTOML([]byte("not [ valid"))
	assert.Error(t, err)
}
