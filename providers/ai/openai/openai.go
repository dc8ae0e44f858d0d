package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/flowcanvas/internal/utils"
	"github.com/leofalp/flowcanvas/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when a request names no model.
	DefaultModel = "gpt-4o-mini"
	// DefaultTemperature is sent when a request carries no generation config.
	DefaultTemperature = 0.7
	// NoResponse is the content reported when the model answers with nothing.
	NoResponse = "No response generated"
)

var availableModels = []ai.ModelOption{
	{Value: "gpt-4o-mini", Label: "GPT-4o Mini"},
	{Value: "gpt-4.1", Label: "GPT-4.1"},
	{Value: "gpt-5-nano", Label: "GPT-5 Nano"},
	{Value: "gpt-5-mini", Label: "GPT-5 Mini"},
	{Value: "gpt-5", Label: "GPT-5"},
}

// OpenAIProvider talks to the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ ai.Provider = (*OpenAIProvider)(nil)

// New creates a provider configured from the environment.
func New() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	if baseURL != "" {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
	}
	return p
}

func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// Models returns the picker entries; the first is the default.
func (p *OpenAIProvider) Models() []ai.ModelOption {
	return append([]ai.ModelOption(nil), availableModels...)
}

// SendMessage implements ai.Provider.
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OpenAI %w: add OPENAI_API_KEY to your .env.local file", ai.ErrMissingAPIKey)
	}

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestToChatCompletion(request))
	if err != nil {
		return nil, describeError(err)
	}
	return chatCompletionToGeneric(*resp), nil
}
