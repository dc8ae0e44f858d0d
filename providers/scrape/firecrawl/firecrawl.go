package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/flowcanvas/internal/utils"
	"github.com/leofalp/flowcanvas/providers/scrape"
)

const (
	defaultBaseURL = "https://api.firecrawl.dev"
	scrapeEndpoint = "/v1/scrape"
)

// Client scrapes pages through Firecrawl.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ scrape.Scraper = (*Client)(nil)

// New creates a client configured from the environment.
func New() *Client {
	baseURL := os.Getenv("FIRECRAWL_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  os.Getenv("FIRECRAWL_API_KEY"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (c *Client) WithAPIKey(apiKey string) *Client {
	c.apiKey = apiKey
	return c
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
	return c
}

func (c *Client) WithHttpClient(httpClient *http.Client) *Client {
	c.client = httpClient
	return c
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			SourceURL string `json:"sourceURL"`
		} `json:"metadata"`
	} `json:"data"`
}

// Scrape implements scrape.Scraper.
func (c *Client) Scrape(ctx context.Context, url string) (*scrape.Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Firecrawl %w: add FIRECRAWL_API_KEY to your .env.local file", scrape.ErrMissingAPIKey)
	}

	body := scrapeRequest{URL: url, Formats: []string{"markdown"}}
	_, resp, err := utils.DoPostSync[scrapeResponse](ctx, c.client, c.baseURL+scrapeEndpoint, c.apiKey, body)
	if err != nil {
		return nil, describeError(err)
	}
	if !resp.Success && resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	if resp.Data.Markdown == "" {
		return nil, scrape.ErrNoContent
	}

	result := &scrape.Result{URL: url, Markdown: resp.Data.Markdown}
	if src := resp.Data.Metadata.SourceURL; src != "" {
		result.URL = src
	}
	return result, nil
}

// describeError surfaces the "error" field Firecrawl puts in failure bodies.
func describeError(err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(httpErr.Body, &payload) != nil || payload.Error == "" {
		return err
	}
	return fmt.Errorf("firecrawl: %s (status %d)", payload.Error, httpErr.StatusCode)
}
