// Package assets resolves static binary resources (letterhead, signature,
// stamp images) for the invoice exporter. Fetches honor context cancellation
// so a dismissed render never consumes a late result.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher returns raw image bytes for a static resource path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

var errPathEscape = errors.New("asset path escapes base directory")

// New picks the HTTP fetcher when a base URL is configured, otherwise the
// local directory fetcher.
func New(baseURL, dir string) Fetcher {
	if baseURL != "" {
		return &HTTPFetcher{BaseURL: baseURL, Client: &http.Client{Timeout: 10 * time.Second}}
	}
	return DirFetcher{Dir: dir}
}

// HTTPFetcher pulls assets from a static resource host.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := strings.TrimRight(f.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// DirFetcher reads assets from a local directory.
type DirFetcher struct {
	Dir string
}

func (f DirFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := filepath.Join(f.Dir, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, filepath.Clean(f.Dir)+string(os.PathSeparator)) {
		return nil, errPathEscape
	}
	return os.ReadFile(full)
}
