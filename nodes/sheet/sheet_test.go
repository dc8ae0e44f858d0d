package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

type fakeWriter struct {
	err   error
	calls int
	last  sheets.WriteRequest
}

func (f *fakeWriter) Write(ctx context.Context, request sheets.WriteRequest) (*sheets.WriteResult, error) {
	f.calls++
	f.last = request
	if f.err != nil {
		return nil, f.err
	}
	return &sheets.WriteResult{
		Success:      true,
		UpdatedRows:  int64(len(request.Data)),
		UpdatedCells: int64(len(request.Data)),
		Range:        request.Range(),
	}, nil
}

func graph(t *testing.T, markdown string, payload flow.SheetPayload) *flow.Store {
	t.Helper()
	store := flow.NewStore()
	for _, n := range []flow.Node{
		{ID: "scrape-1", Payload: flow.ScrapePayload{Markdown: markdown}},
		{ID: "sheet-1", Payload: payload},
	} {
		if err := store.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	store.Connect(flow.NewEdge("scrape-1", "sheet-1"))
	return store
}

func newNode(t *testing.T, store *flow.Store, writer sheets.Writer) *Node {
	t.Helper()
	scope, err := store.Scope("sheet-1")
	if err != nil {
		t.Fatal(err)
	}
	n, err := New(scope, writer)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func payloadOf(store *flow.Store) flow.SheetPayload {
	n, _ := store.Node("sheet-1")
	return n.Payload.(flow.SheetPayload)
}

func TestNew_Defaults(t *testing.T) {
	n := newNode(t, graph(t, "", flow.SheetPayload{SpreadsheetID: "abc"}), &fakeWriter{})
	expected := Target{SpreadsheetID: "abc", SheetName: DefaultSheetName, StartCell: DefaultStartCell}
	if got := n.Target(); got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	n.SetTarget(Target{SpreadsheetID: "xyz", SheetName: "Data"})
	if got := n.Target(); got.StartCell != DefaultStartCell || got.SheetName != "Data" {
		t.Errorf("Expected start cell default on update, got %+v", got)
	}
}

func TestRun_Success(t *testing.T) {
	writer := &fakeWriter{}
	store := graph(t, "# Heading\nLine one\n\nLine two", flow.SheetPayload{})
	n := newNode(t, store, writer)
	n.SetInput("sheet-123")

	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expectedRows := [][]string{{"Scraped Content (Source 1)"}, {"Line one"}, {"Line two"}, {""}}
	if diff := cmp.Diff(expectedRows, writer.last.Data); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if writer.last.Range() != "Sheet1!A1" {
		t.Errorf("Expected range Sheet1!A1, got %s", writer.last.Range())
	}

	expected := flow.SheetPayload{
		SpreadsheetID: "sheet-123",
		SheetName:     "Sheet1",
		StartCell:     "A1",
		LastWriteInfo: "Successfully wrote 4 rows to Sheet1!A1",
	}
	if got := payloadOf(store); got != expected {
		t.Errorf("Expected payload %+v, got %+v", expected, got)
	}
}

func TestRun_Failures(t *testing.T) {
	testCases := []struct {
		name        string
		markdown    string
		spreadsheet string
		writer      *fakeWriter
		category    action.Category
		message     string
		calls       int
	}{
		{
			name:     "no spreadsheet id",
			markdown: "body",
			writer:   &fakeWriter{},
			category: action.CategoryValidation,
			message:  "Please enter a Spreadsheet ID",
		},
		{
			name:        "no upstream data",
			spreadsheet: "sheet-123",
			writer:      &fakeWriter{},
			category:    action.CategoryValidation,
			message:     "No input data available. Please connect and populate other nodes first.",
		},
		{
			name:        "server not configured",
			markdown:    "body",
			spreadsheet: "sheet-123",
			writer:      &fakeWriter{err: sheets.ErrNotConfigured},
			category:    action.CategoryCredential,
			message:     sheets.ErrNotConfigured.Error(),
			calls:       1,
		},
		{
			name:        "api failure",
			markdown:    "body",
			spreadsheet: "sheet-123",
			writer:      &fakeWriter{err: errors.New("The caller does not have permission")},
			category:    action.CategoryProvider,
			message:     "The caller does not have permission",
			calls:       1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			previous := flow.SheetPayload{SpreadsheetID: "old", SheetName: "Sheet1", StartCell: "A1", LastWriteInfo: "Successfully wrote 2 rows to Sheet1!A1"}
			store := graph(t, tc.markdown, previous)
			n := newNode(t, store, tc.writer)
			n.SetInput(tc.spreadsheet)

			err := n.Run(context.Background())
			if got := action.Classify(err); got != tc.category {
				t.Errorf("Expected category %s, got %s (%v)", tc.category, got, err)
			}
			if got := n.State().Message; got != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, got)
			}
			if tc.writer.calls != tc.calls {
				t.Errorf("Expected %d writes, got %d", tc.calls, tc.writer.calls)
			}
			if got := payloadOf(store); got != previous {
				t.Errorf("Expected previous payload kept, got %+v", got)
			}
		})
	}
}

func TestWriteInfo(t *testing.T) {
	got := WriteInfo(12, Target{SheetName: "Data", StartCell: "B2"})
	if got != "Successfully wrote 12 rows to Data!B2" {
		t.Errorf("Unexpected write info %q", got)
	}
}
