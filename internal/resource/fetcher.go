package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"consentgate/internal/sentinel"
)

// ErrResourceTooLarge marks a response that exceeds the configured fetch size
// cap. Oversized resources fail rather than pass integrity checks on a
// truncated prefix.
var ErrResourceTooLarge = errors.New("resource exceeds size limit")

// Fetcher performs the actual resource fetch. The loader treats it as an
// opaque asynchronous collaborator; swapping it out is how tests run without
// a network.
type Fetcher interface {
	Fetch(ctx context.Context, d Descriptor) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, d Descriptor) error

func (f FetcherFunc) Fetch(ctx context.Context, d Descriptor) error {
	return f(ctx, d)
}

const defaultMaxFetchBytes = 16 << 20 // 16 MiB

// HTTPFetcher prefetches resources over HTTP and verifies declared
// subresource integrity before the page is allowed to reference them.
type HTTPFetcher struct {
	client   *http.Client
	baseURL  *url.URL
	maxBytes int64
}

// HTTPOption configures the HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithClient overrides the HTTP client.
func WithClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithBaseURL resolves relative identifiers against the given base.
// An empty or unparseable base leaves relative identifiers unfetched.
func WithBaseURL(base string) HTTPOption {
	return func(f *HTTPFetcher) {
		if base == "" {
			return
		}
		if parsed, err := url.Parse(base); err == nil && parsed.IsAbs() {
			f.baseURL = parsed
		}
	}
}

// WithMaxBytes overrides the fetch size cap.
func WithMaxBytes(max int64) HTTPOption {
	return func(f *HTTPFetcher) {
		if max > 0 {
			f.maxBytes = max
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// NewHTTPFetcher constructs an HTTP fetcher.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		maxBytes: defaultMaxFetchBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves the descriptor's identifier and downloads it. Bare logical
// paths with no configured base URL succeed without a network round trip,
// there is nothing to prefetch for them.
func (f *HTTPFetcher) Fetch(ctx context.Context, d Descriptor) error {
	target, ok, err := f.resolve(d.Identifier)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", d.Identifier, err)
	}
	if d.Kind == KindStylesheet {
		req.Header.Set("Accept", "text/css,*/*;q=0.1")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", d.Identifier, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("fetch %s: unexpected status %d: %w", d.Identifier, resp.StatusCode, sentinel.ErrUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", d.Identifier, err)
	}
	if int64(len(body)) > f.maxBytes {
		return fmt.Errorf("fetch %s: body over %d bytes: %w", d.Identifier, f.maxBytes, ErrResourceTooLarge)
	}

	if d.Integrity != "" {
		if err := VerifyIntegrity(body, d.Integrity); err != nil {
			return fmt.Errorf("verify %s: %w", d.Identifier, err)
		}
	}
	return nil
}

// resolve turns an identifier into an absolute URL. The second return value
// reports whether there is anything to fetch.
func (f *HTTPFetcher) resolve(identifier string) (string, bool, error) {
	parsed, err := url.Parse(identifier)
	if err != nil {
		return "", false, fmt.Errorf("parse identifier %q: %w", identifier, err)
	}
	if parsed.IsAbs() {
		return parsed.String(), true, nil
	}
	if f.baseURL == nil {
		return "", false, nil
	}
	return f.baseURL.ResolveReference(parsed).String(), true, nil
}
