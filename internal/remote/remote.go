// Package remote holds the HTTP GET used for remote resources, prompt bodies
// and external catalog documents.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrStatus is returned when a server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected HTTP status")

// IsURL reports whether p is an http(s) URL rather than a filesystem path.
func IsURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Get performs an HTTP GET and returns the body and the raw Content-Type
// header. Non-2xx responses fail with ErrStatus.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request for %q: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w %d when fetching URL %q", ErrStatus, resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body from %q: %w", url, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
