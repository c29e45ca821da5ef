// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/modgarage/customizer/pkg/core"
)

// Client is a typed client for the customizer HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("request returned status %d: %s", e.StatusCode, e.Message)
}

// Healthcheck checks if the service is reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthcheck", nil)
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// List returns every stored design.
func (c *Client) List(ctx context.Context) ([]core.Design, error) {
	var designs []core.Design
	if err := c.doJSON(ctx, http.MethodGet, "/api/vehicles", nil, &designs); err != nil {
		return nil, err
	}
	return designs, nil
}

// Get returns one design.
func (c *Client) Get(ctx context.Context, id string) (core.Design, error) {
	var d core.Design
	err := c.doJSON(ctx, http.MethodGet, "/api/vehicles/"+url.PathEscape(id), nil, &d)
	return d, err
}

// Create stores a new design and returns it with its assigned ID.
func (c *Client) Create(ctx context.Context, d core.Design) (core.Design, error) {
	var out core.Design
	err := c.doJSON(ctx, http.MethodPost, "/api/vehicles", d, &out)
	return out, err
}

// Update replaces a stored design.
func (c *Client) Update(ctx context.Context, d core.Design) (core.Design, error) {
	var out core.Design
	err := c.doJSON(ctx, http.MethodPut, "/api/vehicles", d, &out)
	return out, err
}

// Delete removes a stored design.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/vehicles?id="+url.QueryEscape(id), nil, nil)
}

// Valuate returns the stats, price and rating of a design without storing it.
func (c *Client) Valuate(ctx context.Context, d core.Design) (core.Valuation, error) {
	var v core.Valuation
	err := c.doJSON(ctx, http.MethodPost, "/api/valuate", d, &v)
	return v, err
}

// Export downloads a design document and returns it with its file name.
func (c *Client) Export(ctx context.Context, id, format string) ([]byte, string, error) {
	path := "/api/vehicles/" + url.PathEscape(id) + "/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read export: %w", err)
	}

	name := id
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return data, name, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &StatusError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
