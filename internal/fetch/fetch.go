// Package fetch retrieves pages over HTTP with bounded retries, redirect
// caps and an optional on-disk cache with conditional revalidation. Bodies
// are decoded to UTF-8 before they are returned or cached.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/hyperifyio/pagebrief/internal/cache"
)

// DefaultUserAgent identifies the service to origin servers.
const DefaultUserAgent = "pagebrief/1.0 (+https://github.com/hyperifyio/pagebrief)"

// DefaultTimeout bounds a single request when the caller sets none.
const DefaultTimeout = 10 * time.Second

// StatusError reports a non-success upstream status so callers can
// distinguish "the page said no" from transport failures.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

// Client wraps http.Client with timeouts and limited retry on transient errors.
type Client struct {
	HTTPClient *http.Client
	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each request. Zero selects DefaultTimeout.
	PerRequestTimeout time.Duration
	// Optional on-disk cache for GET bodies and headers.
	Cache *cache.HTTPCache
	// BypassCache skips conditional headers and cached bodies but still
	// saves the latest response.
	BypassCache bool

	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// MaxConcurrent limits concurrent in-flight requests per client instance.
	// Zero means unlimited.
	MaxConcurrent int

	// internal limiter initialized on first use when MaxConcurrent > 0
	limiter     chan struct{}
	limiterOnce sync.Once
}

type response struct {
	body         []byte
	contentType  string
	etag         string
	lastModified string
	status       int
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating the caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{CheckRedirect: c.checkRedirectFunc()}
}

func (c *Client) timeout() time.Duration {
	if c.PerRequestTimeout > 0 {
		return c.PerRequestTimeout
	}
	return DefaultTimeout
}

// Get issues a GET with context, user-agent and bounded retry for transient
// errors. The returned body is UTF-8 regardless of the page's declared
// charset.
func (c *Client) Get(ctx context.Context, url string) ([]byte, string, error) {
	var etag, lastMod string
	if c.Cache != nil && !c.BypassCache {
		if meta, err := c.Cache.LoadMeta(ctx, url); err == nil && meta != nil {
			etag = meta.ETag
			lastMod = meta.LastModified
		}
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	refetched := false
	for i := 0; i < attempts; i++ {
		res, err := c.tryOnce(ctx, url, etag, lastMod)
		if err == nil {
			if res.status == http.StatusNotModified {
				if c.Cache != nil {
					if cached, cerr := c.Cache.LoadBody(ctx, url); cerr == nil {
						return cached, res.contentType, nil
					}
				}
				if refetched {
					return nil, "", fmt.Errorf("fetch %s: not modified but no cached body", url)
				}
				// The validator matched but the cached body is gone.
				// Drop the validators and refetch in full.
				refetched = true
				etag, lastMod = "", ""
				i--
				continue
			}
			if c.Cache != nil {
				_ = c.Cache.Save(ctx, url, res.contentType, res.etag, res.lastModified, res.body)
			}
			return res.body, res.contentType, nil
		}
		if !isTransient(err) || i == attempts-1 {
			return nil, "", err
		}
		lastErr = err
		time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return nil, "", lastErr
}

func (c *Client) tryOnce(ctx context.Context, rawURL string, etag string, lastMod string) (response, error) {
	// Concurrency gate per client instance.
	c.acquire()
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return response{}, fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastMod != "" {
		req.Header.Set("If-Modified-Since", lastMod)
	}

	httpClient := c.getHTTPClient()
	reqCtx, cancel := context.WithTimeout(req.Context(), c.timeout())
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return response{
			contentType:  resp.Header.Get("Content-Type"),
			etag:         resp.Header.Get("ETag"),
			lastModified: resp.Header.Get("Last-Modified"),
			status:       resp.StatusCode,
		}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response{}, &StatusError{URL: rawURL, Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isAllowedHTMLContentType(contentType) {
		return response{}, fmt.Errorf("unsupported content type: %s", contentType)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read body: %w", err)
	}
	return response{
		body:         decodeToUTF8(raw, contentType),
		contentType:  contentType,
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		status:       resp.StatusCode,
	}, nil
}

// decodeToUTF8 converts a body to UTF-8 using the Content-Type charset and
// in-document hints. Decode failures fall back to the raw bytes.
func decodeToUTF8(raw []byte, contentType string) []byte {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return raw
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return raw
	}
	return decoded
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 500
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects.
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" {
		// Servers that omit the header are treated as HTML; charset
		// sniffing still applies.
		return true
	}
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

func (c *Client) acquire() {
	if c.MaxConcurrent <= 0 {
		return
	}
	c.limiterOnce.Do(func() {
		c.limiter = make(chan struct{}, c.MaxConcurrent)
	})
	c.limiter <- struct{}{}
}

func (c *Client) release() {
	if c.MaxConcurrent <= 0 || c.limiter == nil {
		return
	}
	select {
	case <-c.limiter:
	default:
		// should not happen, but avoid blocking
	}
}
