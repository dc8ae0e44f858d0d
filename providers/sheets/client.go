package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/leofalp/flowcanvas/internal/utils"
)

const (
	// Endpoint is the route served by the flowcanvas server.
	Endpoint = "/api/google-sheets"

	defaultFailure = "Failed to write to Google Sheets"
)

// Client writes by posting to a flowcanvas server.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ Writer = (*Client)(nil)

// NewClient targets the server at baseURL, e.g. "http://localhost:3000".
func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), client: &http.Client{}}
}

func (c *Client) WithHttpClient(httpClient *http.Client) *Client {
	c.client = httpClient
	return c
}

// Write implements Writer. A failure payload's "error" field becomes the
// returned error text.
func (c *Client) Write(ctx context.Context, request WriteRequest) (*WriteResult, error) {
	_, result, err := utils.DoPostSync[WriteResult](ctx, c.client, c.baseURL+Endpoint, "", request)
	if err != nil {
		var httpErr *utils.HTTPError
		if !errors.As(err, &httpErr) {
			return nil, err
		}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(httpErr.Body, &payload) != nil || payload.Error == "" {
			return nil, errors.New(defaultFailure)
		}
		return nil, errors.New(payload.Error)
	}
	return result, nil
}
