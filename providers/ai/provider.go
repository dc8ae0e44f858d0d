package ai

import (
	"context"
	"net/http"
)

// Provider is implemented by every language-model client.
type Provider interface {
	// SendMessage performs one completion. It returns ErrMissingAPIKey
	// (wrapped or not) before any network call when unconfigured.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// Models lists the models offered in the chat node's picker.
	Models() []ModelOption

	WithAPIKey(apiKey string) Provider
	WithBaseURL(baseURL string) Provider
	WithHttpClient(httpClient *http.Client) Provider
}
