package sheets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/leofalp/flowcanvas/internal/credentials"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const valueInputOption = "USER_ENTERED"

// Google writes through the Sheets API with a service-account JWT.
type Google struct {
	email      string
	privateKey string
	endpoint   string
	tokenURL   string
	client     *http.Client
}

var _ Writer = (*Google)(nil)

// NewGoogle builds a writer for the given service account. A key with
// escaped \n sequences is accepted.
func NewGoogle(email, privateKey string) *Google {
	return &Google{
		email:      email,
		privateKey: credentials.UnescapePrivateKey(privateKey),
		tokenURL:   google.JWTTokenURL,
	}
}

// WithEndpoint overrides the Sheets API base URL.
func (g *Google) WithEndpoint(endpoint string) *Google {
	g.endpoint = endpoint
	return g
}

// WithTokenURL overrides the OAuth2 token endpoint.
func (g *Google) WithTokenURL(tokenURL string) *Google {
	if tokenURL != "" {
		g.tokenURL = tokenURL
	}
	return g
}

// WithHttpClient sets the transport used for both token and API calls.
func (g *Google) WithHttpClient(httpClient *http.Client) *Google {
	g.client = httpClient
	return g
}

// Configured reports whether both halves of the credential are present.
func (g *Google) Configured() bool {
	return g.email != "" && g.privateKey != ""
}

// Write implements Writer.
func (g *Google) Write(ctx context.Context, request WriteRequest) (*WriteResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	conf := &jwt.Config{
		Email:      g.email,
		PrivateKey: []byte(g.privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   g.tokenURL,
	}
	if g.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)
	}

	opts := []option.ClientOption{option.WithHTTPClient(conf.Client(ctx))}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}
	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	values := make([][]interface{}, len(request.Data))
	for i, row := range request.Data {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	resp, err := service.Spreadsheets.Values.
		Update(request.SpreadsheetID, request.Range(), &sheetsapi.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return &WriteResult{
		Success:      true,
		UpdatedRows:  resp.UpdatedRows,
		UpdatedCells: resp.UpdatedCells,
		Range:        request.Range(),
	}, nil
}
