package openai

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/leofalp/flowcanvas/internal/utils"
	"github.com/leofalp/flowcanvas/providers/ai"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

type chatCompletionRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         *float64      `json:"temperature,omitempty"`
	MaxCompletionTokens *int          `json:"max_completion_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

type chatResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

/*
	CONVERSION FUNCTIONS
*/

func requestToChatCompletion(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{Model: request.Model}
	if req.Model == "" {
		req.Model = DefaultModel
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}
	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature > 0 {
			req.Temperature = utils.Ptr(float64(cfg.Temperature))
		}
		if cfg.MaxOutputTokens > 0 {
			req.MaxCompletionTokens = utils.Ptr(cfg.MaxOutputTokens)
		}
	} else {
		req.Temperature = utils.Ptr(DefaultTemperature)
	}
	return req
}

// chatCompletionToGeneric keeps the first choice. Empty content becomes
// NoResponse so downstream nodes always see something once the call succeeds.
func chatCompletionToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{ID: resp.ID, Model: resp.Model, Content: NoResponse}
	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	if len(resp.Choices) == 0 {
		out.FinishReason = "error"
		return out
	}

	choice := resp.Choices[0]
	out.FinishReason = choice.FinishReason
	out.Refusal = choice.Message.Refusal
	if content := strings.TrimSpace(choice.Message.Content); content != "" {
		out.Content = content
	}
	return out
}

// describeError replaces a raw HTTP failure with the API's own message when
// the body carries one.
func describeError(err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	var envelope errorEnvelope
	if json.Unmarshal(httpErr.Body, &envelope) != nil || envelope.Error.Message == "" {
		return err
	}
	return &apiError{status: httpErr.StatusCode, message: envelope.Error.Message, cause: err}
}

type apiError struct {
	status  int
	message string
	cause   error
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.cause }
