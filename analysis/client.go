// ABOUTME: HTTP client for the backend /api/analyze endpoint
// ABOUTME: Posts a selection as JSON and decodes the typed analysis response

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultEndpoint is the analysis endpoint of a locally running backend
const DefaultEndpoint = "http://localhost:5000/api/analyze"

// RequestIDHeader carries a per-request id so client and backend logs line up
const RequestIDHeader = "X-Request-ID"

var (
	// ErrStatus is returned when the backend answers with a non-2xx status
	ErrStatus = errors.New("analysis client: unexpected status")
	// ErrDecode is returned when the response body is not a valid analysis response
	ErrDecode = errors.New("analysis client: invalid response")
)

// Client posts selections to the analysis endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient constructs a client for endpoint. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, endpoint string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimSpace(endpoint),
	}
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze posts sel and decodes the response according to sel.VisualizationType
func (c *Client) Analyze(ctx context.Context, sel Selection) (Response, error) {
	body, err := json.Marshal(sel)
	if err != nil {
		return Response{}, fmt.Errorf("analysis client: encode selection: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("analysis client: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("analysis client: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)

		return Response{}, fmt.Errorf("%w: %d (request %s)", ErrStatus, resp.StatusCode, req.Header.Get(RequestIDHeader))
	}

	out, err := DecodeResponse(resp.Body, sel.VisualizationType)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return out, nil
}
