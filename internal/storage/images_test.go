package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	ref, err := store.Put("photo.JPG", []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(ref))

	_, err = os.Stat(filepath.Join(dir, ref))
	assert.NoError(t, err)

	require.NoError(t, store.Delete(ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalImageStoreRejectsBadUploads(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put("script.exe", []byte("nope"))
	assert.Error(t, err)

	oversized := make([]byte, MaxImageSize+1)
	_, err = store.Put("big.png", oversized)
	assert.Error(t, err)
}

func TestLocalImageStoreDeleteIsTolerant(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	// Blank refs, remote URLs, and already-deleted files are not errors.
	assert.NoError(t, store.Delete(""))
	assert.NoError(t, store.Delete("https://cdn.example.com/image.png"))
	assert.NoError(t, store.Delete("never-existed.png"))
}
