package merge

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/leofalp/flowcanvas/core/flow"
)

var scraped = flow.Snippet{Kind: flow.KindScrape, Label: "Scraped Content", Content: "Hello world"}

func TestPrompt_NoSnippets(t *testing.T) {
	if got := Prompt("Summarize: {input}", nil); got != "Summarize: {input}" {
		t.Errorf("Expected prompt verbatim, got %q", got)
	}
}

func TestPrompt_ReplacesPlaceholder(t *testing.T) {
	got := Prompt("Summarize: {input}", []flow.Snippet{scraped})

	want := "Summarize: [Scraped Content]\nHello world"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.Contains(got, Placeholder) {
		t.Errorf("Expected no residual placeholder, got %q", got)
	}
}

func TestPrompt_ReplacesEveryPlaceholder(t *testing.T) {
	got := Prompt("{input} / {input}", []flow.Snippet{scraped})
	if strings.Count(got, "[Scraped Content]") != 2 {
		t.Errorf("Expected both placeholders replaced, got %q", got)
	}
}

func TestPrompt_PrependsContext(t *testing.T) {
	got := Prompt("Summarize this", []flow.Snippet{scraped})

	want := "[Scraped Content]\nHello world" + "\n\n---\n\n" + "User Request:\n" + "Summarize this"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestContext_MultipleSnippets(t *testing.T) {
	snippets := []flow.Snippet{
		scraped,
		{Kind: flow.KindChat, Label: "AI Response", Content: "Summary"},
	}
	want := "[Scraped Content]\nHello world\n\n---\n\n[AI Response]\nSummary"
	if got := Context(snippets); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRows(t *testing.T) {
	testCases := []struct {
		name     string
		snippets []flow.Snippet
		expected [][]string
	}{
		{
			name:     "scrape drops headings and blank lines",
			snippets: []flow.Snippet{{Kind: flow.KindScrape, Label: "Scraped Content", Content: "# Title\nLine one\n\nLine two"}},
			expected: [][]string{{"Scraped Content (Source 1)"}, {"Line one"}, {"Line two"}, {""}},
		},
		{
			name:     "chat splits paragraphs",
			snippets: []flow.Snippet{{Kind: flow.KindChat, Label: "AI Response", Content: "First para\nstill first\n\n  Second  \n\n\n"}},
			expected: [][]string{{"AI Response (Source 1)"}, {"First para\nstill first"}, {"Second"}, {""}},
		},
		{
			name:     "other kinds keep trimmed lines",
			snippets: []flow.Snippet{{Kind: "other", Label: "Misc", Content: "  a \n\n# b"}},
			expected: [][]string{{"Misc (Source 1)"}, {"a"}, {"# b"}, {""}},
		},
		{
			name: "sources are numbered in order",
			snippets: []flow.Snippet{
				{Kind: flow.KindScrape, Label: "Scraped Content", Content: "x"},
				{Kind: flow.KindChat, Label: "AI Response", Content: "y"},
			},
			expected: [][]string{
				{"Scraped Content (Source 1)"}, {"x"}, {""},
				{"AI Response (Source 2)"}, {"y"}, {""},
			},
		},
		{
			name:     "no snippets",
			snippets: nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, Rows(tc.snippets)); diff != "" {
				t.Errorf("Rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
