package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/muurk/custdesk/internal/logging"
)

const (
	// DefaultBaseURL is used when no base URL is configured
	DefaultBaseURL = "http://localhost:8080/customerapi"

	// maxErrorBody caps how much of a failed response body is kept
	maxErrorBody = 512
)

// Client talks to the remote customer collection.
//
// It performs exactly one HTTP request per call. Retries and caching are left
// to the caller.
type Client struct {
	// BaseURL is the collection resource, e.g. "http://localhost:8080/customerapi"
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the given collection URL. A trailing slash
// is ignored. An empty URL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// SetTimeout sets the HTTP request timeout. Zero leaves the transport default.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// ListAll returns every customer in the order the service sends them.
func (c *Client) ListAll(ctx context.Context) ([]Customer, error) {
	body, err := c.do(ctx, "list", http.MethodGet, "/all", nil)
	if err != nil {
		return nil, err
	}

	customers := make([]Customer, 0)
	if err := json.Unmarshal(body, &customers); err != nil {
		return nil, NewParseError("list", err)
	}
	if customers == nil {
		customers = []Customer{}
	}
	return customers, nil
}

// GetByID fetches a single customer. A missing record yields an error for
// which IsNotFound is true.
func (c *Client) GetByID(ctx context.Context, id int64) (*Customer, error) {
	body, err := c.do(ctx, "get", http.MethodGet, "/get/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var cust Customer
	if err := json.Unmarshal(body, &cust); err != nil {
		return nil, NewParseError("get", err)
	}
	return &cust, nil
}

// Create submits a new customer. The record must already be validated.
func (c *Client) Create(ctx context.Context, cust Customer) error {
	_, err := c.doJSON(ctx, "add", http.MethodPost, "/add", cust)
	return err
}

// Update replaces the customer selected by cust.ID. The record must already
// be validated.
func (c *Client) Update(ctx context.Context, cust Customer) error {
	_, err := c.doJSON(ctx, "update", http.MethodPut, "/update", cust)
	return err
}

// DeleteByID removes a customer and returns the service's acknowledgement
// text unchanged.
func (c *Client) DeleteByID(ctx context.Context, id int64) (string, error) {
	body, err := c.do(ctx, "delete", http.MethodDelete, "/delete/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, NewRequestError(op, err)
	}
	return c.do(ctx, op, method, path, data)
}

// do performs a single request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, NewRequestError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		svcErr := ClassifyNetworkError(op, err)
		logging.LogServiceCall(method, req.URL.String(), 0, time.Since(start), svcErr)
		return nil, svcErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		svcErr := ClassifyNetworkError(op, err)
		logging.LogServiceCall(method, req.URL.String(), resp.StatusCode, time.Since(start), svcErr)
		return nil, svcErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(body))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		svcErr := NewHTTPError(op, resp.StatusCode, text)
		logging.LogServiceCall(method, req.URL.String(), resp.StatusCode, time.Since(start), svcErr)
		return nil, svcErr
	}

	logging.LogServiceCall(method, req.URL.String(), resp.StatusCode, time.Since(start), nil)
	return body, nil
}
