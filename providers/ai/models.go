package ai

import "errors"

// ErrMissingAPIKey is returned by providers before any network traffic when
// no API key is configured.
var ErrMissingAPIKey = errors.New("API key is not set")

// MessageRole is the author of a chat message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatRequest is one completion request.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`
	Messages         []Message         `json:"messages"`
	SystemPrompt     string            `json:"system_prompt,omitempty"`
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"`
}

// Message is a single conversation turn.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// GenerationConfig holds optional sampling parameters.
type GenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`       // [0..2]
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"` // 0 = provider default
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse is the provider-neutral completion result.
type ChatResponse struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Refusal      string `json:"refusal,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

// ModelOption is an entry in a provider's model picker.
type ModelOption struct {
	Value string
	Label string
}
