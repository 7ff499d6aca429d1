package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKey(t *testing.T) {
	good := map[string]string{
		"photos/1/a.png":    "photos/1/a.png",
		"/photos/1/a.png":   "photos/1/a.png",
		"./photos//1/a.png": "photos/1/a.png",
		`photos\1\a.png`:    "photos/1/a.png",
	}
	for in, want := range good {
		got, err := sanitizeKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "   ", "../etc/passwd", "photos/../../x", ".."} {
		_, err := sanitizeKey(in)
		assert.Error(t, err, in)
	}
}

func TestWriteServeRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/media/")
	require.NoError(t, err)

	key, err := store.Write(context.Background(), "photos/3/me.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photos/3/me.png", key)
	assert.Equal(t, "http://localhost:8080/media/photos/3/me.png", store.URL(key))
	assert.Equal(t, "", store.URL(""))

	_, err = os.Stat(filepath.Join(dir, "photos", "3", "me.png.tmp"))
	assert.True(t, os.IsNotExist(err))

	srv := httptest.NewServer(http.StripPrefix("/media", store.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/media/photos/3/me.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png-bytes", string(body))

	resp, err = http.Get(srv.URL + "/media/photos/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, store.Remove(key))
	require.NoError(t, store.Remove(key))
	_, err = os.Stat(filepath.Join(dir, "photos", "3", "me.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteHonoursCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Write(ctx, "a.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
