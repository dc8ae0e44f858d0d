// Package chat is the chat node. It merges upstream snippets into the
// user's prompt, sends one chat completion and publishes the answer.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/core/merge"
	"github.com/leofalp/flowcanvas/providers/ai"
	"github.com/leofalp/flowcanvas/providers/observability"
)

const (
	// DefaultModel is used when neither the payload nor the options name one.
	DefaultModel = "gpt-4o-mini"
	// Temperature is sent with every completion.
	Temperature = 0.7
	// NoResponse replaces an empty answer.
	NoResponse = "No response generated"

	msgEnterPrompt = "Please enter a prompt"
	msgNoProvider  = "no chat provider configured"
)

// Options configures a Node.
type Options struct {
	Observer     observability.Provider
	DefaultModel string
}

// WithObserver sets the telemetry backend for the node's actions.
func WithObserver(observer observability.Provider) func(*Options) {
	return func(o *Options) { o.Observer = observer }
}

// WithDefaultModel sets the model picked when the payload has none.
func WithDefaultModel(model string) func(*Options) {
	return func(o *Options) { o.DefaultModel = model }
}

// Node is a chat completion step.
type Node struct {
	scope    *flow.Scope
	provider ai.Provider
	runner   *action.Runner

	mu     sync.Mutex
	prompt string
	model  string
}

// New binds a chat node to scope. Prompt and model start from the payload.
func New(scope *flow.Scope, provider ai.Provider, opts ...func(*Options)) (*Node, error) {
	options := Options{DefaultModel: DefaultModel}
	for _, opt := range opts {
		opt(&options)
	}

	n, err := scope.Node()
	if err != nil {
		return nil, err
	}
	payload, ok := n.Payload.(flow.ChatPayload)
	if !ok {
		return nil, fmt.Errorf("%w: node %s is %s", flow.ErrKindMismatch, n.ID, n.Kind())
	}

	model := payload.Model
	if model == "" {
		model = options.DefaultModel
	}
	return &Node{
		scope:    scope,
		provider: provider,
		runner:   action.New(n.ID, string(flow.KindChat), options.Observer),
		prompt:   payload.Prompt,
		model:    model,
	}, nil
}

func (n *Node) ID() string { return n.scope.ID() }

func (n *Node) Kind() flow.Kind { return flow.KindChat }

func (n *Node) Prompt() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.prompt
}

func (n *Node) SetPrompt(prompt string) {
	n.mu.Lock()
	n.prompt = prompt
	n.mu.Unlock()
}

func (n *Node) Model() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.model
}

func (n *Node) SetModel(model string) {
	n.mu.Lock()
	n.model = model
	n.mu.Unlock()
}

// Models lists the provider's model picker, or nil without a provider.
func (n *Node) Models() []ai.ModelOption {
	if n.provider == nil {
		return nil
	}
	return n.provider.Models()
}

func (n *Node) Input() string { return n.Prompt() }

func (n *Node) SetInput(value string) { n.SetPrompt(value) }

func (n *Node) State() action.State { return n.runner.State() }

func (n *Node) Wait(ctx context.Context) error { return n.runner.Wait(ctx) }

// Inputs returns the snippets currently flowing into the node.
func (n *Node) Inputs() []flow.Snippet {
	return n.scope.Incoming()
}

// FinalPrompt is what would be sent if the node ran now.
func (n *Node) FinalPrompt() string {
	return merge.Prompt(n.Prompt(), n.Inputs())
}

// Run generates synchronously.
func (n *Node) Run(ctx context.Context) error {
	return n.runner.Run(ctx, n.generate)
}

// Trigger generates in the background; it is a no-op while running.
func (n *Node) Trigger(ctx context.Context) bool {
	return n.runner.Trigger(ctx, n.generate)
}

func (n *Node) generate(ctx context.Context) error {
	prompt, model := n.Prompt(), n.Model()
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: %s", action.ErrValidation, msgEnterPrompt)
	}
	if n.provider == nil {
		return fmt.Errorf("%w: %s", action.ErrMissingCredential, msgNoProvider)
	}

	// Snippets are read once, at call time.
	final := merge.Prompt(prompt, n.Inputs())
	resp, err := n.provider.SendMessage(ctx, ai.ChatRequest{
		Model:            model,
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: final}},
		GenerationConfig: &ai.GenerationConfig{Temperature: Temperature},
	})
	if err != nil {
		return action.Wrap(err, ai.ErrMissingAPIKey)
	}

	answer := NoResponse
	if resp != nil && resp.Content != "" {
		answer = resp.Content
	}
	return n.scope.Replace(flow.ChatPayload{Prompt: prompt, Model: model, Response: answer})
}
