package sheets

import (
	"context"
	"errors"
)

var (
	// ErrMissingFields is returned when a request lacks any of its four fields.
	ErrMissingFields = errors.New("Missing required fields: spreadsheetId, sheetName, startCell, data")
	// ErrNotConfigured is returned when the service-account email or key is empty.
	ErrNotConfigured = errors.New("Google Sheets service account credentials not configured on server")
)

// WriteRequest is the body of POST /api/google-sheets.
type WriteRequest struct {
	SpreadsheetID string     `json:"spreadsheetId"`
	SheetName     string     `json:"sheetName"`
	StartCell     string     `json:"startCell"`
	Data          [][]string `json:"data"`
}

// Validate reports ErrMissingFields when a string field is empty or Data
// is absent.
func (r WriteRequest) Validate() error {
	if r.SpreadsheetID == "" || r.SheetName == "" || r.StartCell == "" || r.Data == nil {
		return ErrMissingFields
	}
	return nil
}

// Range is the A1 notation of the write origin, e.g. "Sheet1!A1".
func (r WriteRequest) Range() string {
	return r.SheetName + "!" + r.StartCell
}

// WriteResult is the success body of POST /api/google-sheets.
type WriteResult struct {
	Success      bool   `json:"success"`
	UpdatedRows  int64  `json:"updatedRows"`
	UpdatedCells int64  `json:"updatedCells"`
	Range        string `json:"range"`
}

// Writer writes rows starting at the request's start cell. The range is
// sized by the data.
type Writer interface {
	Write(ctx context.Context, request WriteRequest) (*WriteResult, error)
}
