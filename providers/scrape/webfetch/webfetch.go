package webfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leofalp/flowcanvas/internal/utils"
	"github.com/leofalp/flowcanvas/providers/scrape"
)

const (
	// DefaultTimeout bounds a whole fetch, body read included.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent unless overridden with WithUserAgent.
	DefaultUserAgent = "flowcanvas-webfetch/1.0"
	// MaxBodySize is the largest accepted response body (10MB).
	MaxBodySize = 10 * 1024 * 1024

	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 10 * time.Second
	maxRedirects          = 10
)

// Fetcher scrapes pages with a local HTTP client.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

var _ scrape.Scraper = (*Fetcher)(nil)

// New returns a Fetcher with the package defaults.
func New() *Fetcher {
	return &Fetcher{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (>%d)", maxRedirects)
				}
				return nil
			},
		},
	}
}

func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	if timeout > 0 {
		f.timeout = timeout
	}
	return f
}

func (f *Fetcher) WithUserAgent(userAgent string) *Fetcher {
	if userAgent != "" {
		f.userAgent = userAgent
	}
	return f
}

func (f *Fetcher) WithHttpClient(httpClient *http.Client) *Fetcher {
	f.client = httpClient
	return f
}

// Scrape implements scrape.Scraper. The returned URL is the final one after
// redirects.
func (f *Fetcher) Scrape(ctx context.Context, rawURL string) (*scrape.Result, error) {
	url := normalizeURL(rawURL)
	if url == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// One extra byte tells an exactly-full body from an oversized one.
	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(htmlBytes) > MaxBodySize {
		return nil, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return nil, scrape.ErrNoContent
	}

	return &scrape.Result{URL: resp.Request.URL.String(), Markdown: markdown}, nil
}

func normalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}
