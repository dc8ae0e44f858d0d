package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/flowcanvas/providers/scrape"
)

func TestScrape(t *testing.T) {
	testCases := []struct {
		name        string
		status      int
		body        string
		expectedMD  string
		expectedURL string
		expectedErr string
	}{
		{
			name:        "markdown returned",
			status:      http.StatusOK,
			body:        `{"success":true,"data":{"markdown":"# Title\nBody","metadata":{"sourceURL":"https://example.com/final"}}}`,
			expectedMD:  "# Title\nBody",
			expectedURL: "https://example.com/final",
		},
		{
			name:        "no source url keeps requested url",
			status:      http.StatusOK,
			body:        `{"success":true,"data":{"markdown":"text"}}`,
			expectedMD:  "text",
			expectedURL: "https://example.com",
		},
		{
			name:        "empty markdown",
			status:      http.StatusOK,
			body:        `{"success":true,"data":{"markdown":""}}`,
			expectedErr: "No markdown content returned",
		},
		{
			name:        "api error payload",
			status:      http.StatusPaymentRequired,
			body:        `{"success":false,"error":"Insufficient credits"}`,
			expectedErr: "Insufficient credits",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/scrape" {
					t.Errorf("Expected path /v1/scrape, got %s", r.URL.Path)
				}
				var req scrapeRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if len(req.Formats) != 1 || req.Formats[0] != "markdown" {
					t.Errorf("Expected formats [markdown], got %v", req.Formats)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := New().WithAPIKey("fc-key").WithBaseURL(server.URL)
			res, err := c.Scrape(context.Background(), "https://example.com")

			if tc.expectedErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.expectedErr) {
					t.Fatalf("Expected error containing %q, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if res.Markdown != tc.expectedMD {
				t.Errorf("Expected markdown %q, got %q", tc.expectedMD, res.Markdown)
			}
			if res.URL != tc.expectedURL {
				t.Errorf("Expected URL %q, got %q", tc.expectedURL, res.URL)
			}
		})
	}
}

func TestScrape_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := New().WithAPIKey("").WithBaseURL(server.URL).Scrape(context.Background(), "https://example.com")
	if !errors.Is(err, scrape.ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Error("Expected no request without a key")
	}
}
