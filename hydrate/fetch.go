// SPDX-License-Identifier: EPL-2.0

package hydrate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a whole download.
const DefaultHTTPTimeout = 2 * time.Minute

// Fetcher opens the bytes behind a file URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// FileFetcher reads local paths and file:// URLs. Relative paths resolve
// against Root when it is set.
type FileFetcher struct {
	Root string
}

func (f FileFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := rawURL
	if strings.HasPrefix(rawURL, "file:") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", rawURL, err)
		}
		name = u.Path
	}
	if f.Root != "" && !filepath.IsAbs(name) {
		name = filepath.Join(f.Root, name)
	}

	return os.Open(name)
}

// HTTPFetcher downloads http and https URLs.
type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %d %s: %w", rawURL, resp.StatusCode, http.StatusText(resp.StatusCode), ErrHTTPStatus)
	}
	return resp.Body, nil
}

// SchemeFetcher routes a URL to the fetcher registered for its scheme. A
// URL without a scheme is looked up under "".
type SchemeFetcher map[string]Fetcher

// NewFetcher handles local paths, file://, http:// and https://. A nil
// client gets a default one.
func NewFetcher(root string, client *http.Client) SchemeFetcher {
	local := FileFetcher{Root: root}
	web := HTTPFetcher{Client: client}
	return SchemeFetcher{"": local, "file": local, "http": web, "https": web}
}

func (m SchemeFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if rawURL == "" {
		return nil, ErrNoURL
	}

	f, ok := m[scheme(rawURL)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", rawURL, ErrUnsupportedScheme)
	}
	return f.Fetch(ctx, rawURL)
}

// scheme returns the lower-cased URL scheme, or "" for plain paths,
// including Windows drive letters.
func scheme(rawURL string) string {
	i := strings.Index(rawURL, "://")
	if i <= 1 {
		if strings.HasPrefix(rawURL, "file:") {
			return "file"
		}
		return ""
	}
	return strings.ToLower(rawURL[:i])
}
