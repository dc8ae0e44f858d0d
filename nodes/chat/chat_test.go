package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/providers/ai"
)

type fakeProvider struct {
	content string
	err     error
	calls   int
	last    ai.ChatRequest
}

func (f *fakeProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	f.calls++
	f.last = request
	if f.err != nil {
		return nil, f.err
	}
	return &ai.ChatResponse{Content: f.content}, nil
}

func (f *fakeProvider) Models() []ai.ModelOption {
	return []ai.ModelOption{{Value: "gpt-4o-mini", Label: "GPT-4o Mini"}}
}

func (f *fakeProvider) WithAPIKey(string) ai.Provider { return f }

func (f *fakeProvider) WithBaseURL(string) ai.Provider { return f }

func (f *fakeProvider) WithHttpClient(*http.Client) ai.Provider { return f }

// graph builds scrape-1 -> chat-1 with the given markdown upstream.
func graph(t *testing.T, markdown string, payload flow.ChatPayload) *flow.Store {
	t.Helper()
	store := flow.NewStore()
	for _, n := range []flow.Node{
		{ID: "scrape-1", Payload: flow.ScrapePayload{URL: "https://example.com", Markdown: markdown}},
		{ID: "chat-1", Payload: payload},
	} {
		if err := store.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	store.Connect(flow.NewEdge("scrape-1", "chat-1"))
	return store
}

func newNode(t *testing.T, store *flow.Store, provider ai.Provider, opts ...func(*Options)) *Node {
	t.Helper()
	scope, err := store.Scope("chat-1")
	if err != nil {
		t.Fatal(err)
	}
	n, err := New(scope, provider, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func payloadOf(store *flow.Store) flow.ChatPayload {
	n, _ := store.Node("chat-1")
	return n.Payload.(flow.ChatPayload)
}

func TestNew_Defaults(t *testing.T) {
	testCases := []struct {
		name     string
		payload  flow.ChatPayload
		opts     []func(*Options)
		expected string
	}{
		{name: "package default", expected: DefaultModel},
		{name: "option default", opts: []func(*Options){WithDefaultModel("gpt-5")}, expected: "gpt-5"},
		{name: "payload wins", payload: flow.ChatPayload{Model: "gpt-4.1"}, opts: []func(*Options){WithDefaultModel("gpt-5")}, expected: "gpt-4.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := newNode(t, graph(t, "", tc.payload), &fakeProvider{}, tc.opts...)
			if n.Model() != tc.expected {
				t.Errorf("Expected model %s, got %s", tc.expected, n.Model())
			}
		})
	}
}

func TestRun_PlaceholderMerge(t *testing.T) {
	provider := &fakeProvider{content: "A summary"}
	store := graph(t, "Hello world", flow.ChatPayload{})
	n := newNode(t, store, provider)
	n.SetPrompt("Summarize: {input}")

	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(provider.last.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(provider.last.Messages))
	}
	sent := provider.last.Messages[0].Content
	if sent != "Summarize: [Scraped Content]\nHello world" {
		t.Errorf("Unexpected prompt %q", sent)
	}
	if provider.last.GenerationConfig == nil || provider.last.GenerationConfig.Temperature != Temperature {
		t.Errorf("Expected temperature %v, got %+v", Temperature, provider.last.GenerationConfig)
	}

	expected := flow.ChatPayload{Prompt: "Summarize: {input}", Model: DefaultModel, Response: "A summary"}
	if got := payloadOf(store); got != expected {
		t.Errorf("Expected payload %+v, got %+v", expected, got)
	}
}

func TestRun_ResponseFeedsDownstream(t *testing.T) {
	store := graph(t, "", flow.ChatPayload{})
	_ = store.AddNode(flow.Node{ID: "sheet-1", Payload: flow.SheetPayload{}})
	store.Connect(flow.NewEdge("chat-1", "sheet-1"))

	n := newNode(t, store, &fakeProvider{content: "Para one\n\nPara two"})
	n.SetPrompt("Write two paragraphs")
	if err := n.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	snippets := store.Incoming("sheet-1")
	if len(snippets) != 1 || snippets[0].Label != flow.LabelAIResponse {
		t.Fatalf("Expected one AI Response snippet, got %+v", snippets)
	}
}

func TestRun_EmptyAnswer(t *testing.T) {
	store := graph(t, "", flow.ChatPayload{})
	n := newNode(t, store, &fakeProvider{content: ""})
	n.SetPrompt("hi")
	if err := n.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := payloadOf(store).Response; got != NoResponse {
		t.Errorf("Expected %q, got %q", NoResponse, got)
	}
}

func TestRun_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		prompt   string
		provider *fakeProvider
		category action.Category
		calls    int
	}{
		{name: "blank prompt", prompt: " \n ", provider: &fakeProvider{}, category: action.CategoryValidation},
		{name: "missing key", prompt: "hi", provider: &fakeProvider{err: fmt.Errorf("OpenAI %w", ai.ErrMissingAPIKey)}, category: action.CategoryCredential, calls: 1},
		{name: "provider error", prompt: "hi", provider: &fakeProvider{err: errors.New("model overloaded")}, category: action.CategoryProvider, calls: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			previous := flow.ChatPayload{Prompt: "old", Model: "gpt-5", Response: "old answer"}
			store := graph(t, "", previous)
			n := newNode(t, store, tc.provider)
			n.SetPrompt(tc.prompt)

			err := n.Run(context.Background())
			if got := action.Classify(err); got != tc.category {
				t.Errorf("Expected category %s, got %s (%v)", tc.category, got, err)
			}
			if tc.provider.calls != tc.calls {
				t.Errorf("Expected %d calls, got %d", tc.calls, tc.provider.calls)
			}
			if got := payloadOf(store); got != previous {
				t.Errorf("Expected previous payload kept, got %+v", got)
			}
		})
	}
}

func TestInputsAndFinalPrompt(t *testing.T) {
	store := graph(t, "Page body", flow.ChatPayload{})
	n := newNode(t, store, &fakeProvider{})
	n.SetPrompt("Explain")

	if len(n.Inputs()) != 1 {
		t.Fatalf("Expected 1 input, got %d", len(n.Inputs()))
	}
	final := n.FinalPrompt()
	if !strings.HasPrefix(final, "[Scraped Content]\nPage body") || !strings.HasSuffix(final, "User Request:\nExplain") {
		t.Errorf("Unexpected final prompt %q", final)
	}
}

func TestModels(t *testing.T) {
	n := newNode(t, graph(t, "", flow.ChatPayload{}), nil)
	if n.Models() != nil {
		t.Error("Expected no models without a provider")
	}
	if err := n.Run(context.Background()); !errors.Is(err, action.ErrValidation) {
		t.Errorf("Expected validation before provider check, got %v", err)
	}
}
