package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ggoodman/mycommandmcp/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, client *http.Client, resources ...catalog.Resource) *Fetcher {
	t.Helper()
	cat, err := catalog.New(nil, nil, resources)
	require.NoError(t, err)
	return New(cat, WithHTTPClient(client))
}

func TestFetch_LocalText(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello notes"), 0o600))

	f := newTestFetcher(t, nil, catalog.Resource{Name: "notes", Path: p})

	for _, uri := range []string{"notes", "file://notes"} {
		got, err := f.Fetch(context.Background(), uri)
		require.NoError(t, err, uri)
		assert.Equal(t, "notes", got.Name)
		assert.Equal(t, "text/plain", got.MimeType)
		assert.Equal(t, []byte("hello notes"), got.Data)
		assert.False(t, got.IsBinary())
	}
}

func TestFetch_LocalBinary(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "blob.bin")
	payload := []byte{0x00, 0xff, 0x10, 0x80}
	require.NoError(t, os.WriteFile(p, payload, 0o600))

	f := newTestFetcher(t, nil, catalog.Resource{Name: "blob", Path: p})
	got, err := f.Fetch(context.Background(), "file://blob")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", got.MimeType)
	assert.Equal(t, payload, got.Data)
	assert.True(t, got.IsBinary())
}

func TestFetch_LocalMissingFile(t *testing.T) {
	f := newTestFetcher(t, nil, catalog.Resource{Name: "gone", Path: filepath.Join(t.TempDir(), "gone.txt")})
	_, err := f.Fetch(context.Background(), "gone")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrResourceNotFound))
}

func TestFetch_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
			_, _ = w.Write([]byte("<p>hi</p>"))
		case "/raw":
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte{0x01, 0x02})
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv.Client(),
		catalog.Resource{Name: "page", Path: srv.URL + "/page"},
		catalog.Resource{Name: "raw", Path: srv.URL + "/raw"},
		catalog.Resource{Name: "missing", Path: srv.URL + "/missing"},
	)

	page, err := f.Fetch(context.Background(), "file://page")
	require.NoError(t, err)
	assert.Equal(t, "text/html", page.MimeType)
	assert.Equal(t, "<p>hi</p>", string(page.Data))

	raw, err := f.Fetch(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", raw.MimeType)
	assert.True(t, raw.IsBinary())

	_, err = f.Fetch(context.Background(), "missing")
	require.ErrorIs(t, err, ErrFetchStatus)
}

func TestFetch_UnknownResource(t *testing.T) {
	f := newTestFetcher(t, nil)
	_, err := f.Fetch(context.Background(), "file://nothing")
	require.ErrorIs(t, err, ErrResourceNotFound)
}

func TestResourceName(t *testing.T) {
	assert.Equal(t, "notes", ResourceName("file://notes"))
	assert.Equal(t, "notes", ResourceName("notes"))
	assert.Equal(t, "file:/notes", ResourceName("file:/notes"))
}
