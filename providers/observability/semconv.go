package observability

// Attribute keys shared across nodes, providers and the HTTP server.
const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status.description"

	AttrNodeID        = "node.id"
	AttrNodeKind      = "node.kind"
	AttrNodeInputs    = "node.inputs"
	AttrActionOutcome = "action.outcome"
	AttrErrorCategory = "error.category"

	AttrProvider      = "provider.name"
	AttrLLMModel      = "llm.model"
	AttrPromptLength  = "llm.prompt.length"
	AttrScrapeURL     = "scrape.url"
	AttrSpreadsheetID = "sheets.spreadsheet_id"
	AttrSheetRange    = "sheets.range"
	AttrSheetRows     = "sheets.rows"

	AttrHTTPMethod           = "http.method"
	AttrHTTPURL              = "http.url"
	AttrHTTPRoute            = "http.route"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// Span names.
const (
	SpanNodeAction  = "flowcanvas.node.action"
	SpanHTTPRequest = "flowcanvas.http.request"
)

// Metric names.
const (
	MetricNodeActions        = "flowcanvas.node.actions"
	MetricNodeActionDuration = "flowcanvas.node.action.duration"
	MetricHTTPRequests       = "flowcanvas.http.requests"
)
