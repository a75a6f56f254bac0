package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".folio", "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("share.base_url", "https://docs.example.com/view"))
	require.NoError(t, store.Set("watch.rate", 12))
	require.NoError(t, store.Set("branding.show_title_bar", true))

	assert.Equal(t, "https://docs.example.com/view", store.GetString("share.base_url"))
	assert.Equal(t, 12, store.GetInt("watch.rate"))
	assert.True(t, store.GetBool("branding.show_title_bar"))

	// Missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("absent"))
	assert.Equal(t, 0, store.GetInt("absent"))
	assert.False(t, store.GetBool("absent"))

	// Type mismatches also fall back.
	assert.Equal(t, "", store.GetString("watch.rate"))
	assert.Equal(t, 0, store.GetInt("share.base_url"))
	assert.False(t, store.GetBool("share.base_url"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("storage.mode", "demo"))
	require.NoError(t, store1.Set("watch.rate", 6))
	require.NoError(t, store1.Set("branding.show_title_bar", false))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "demo", store2.GetString("storage.mode"))
	assert.Equal(t, 6, store2.GetInt("watch.rate"))
	assert.False(t, store2.GetBool("branding.show_title_bar"))
}

func TestConfigStore_NestedTOMLFlattened(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("[branding]\naccent_colour = \"#0EA5E9\"\nlogo_text = \"acme\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "#0EA5E9", store.GetString("branding.accent_colour"))
	assert.Equal(t, "acme", store.GetString("branding.logo_text"))
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("share.base_url", "https://old.example.com"))
	require.NoError(t, store.Set("share.base_url", "https://new.example.com"))
	assert.Equal(t, "https://new.example.com", store.GetString("share.base_url"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.mode", "cloud"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
