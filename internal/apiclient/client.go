package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"taxdesk/internal/models"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Client is an HTTP client for the remote record store.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a new record store client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Wire types (the remote API's shapes, independently defined) ---

// recordPayload is a record as the remote API serves it. The API predates
// the requestDate rename and still calls the field createdAt.
type recordPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Country   string `json:"country"`
	CountryID string `json:"countryId"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// categoryPayload is a country as the remote API serves it.
type categoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HealthResponse is the response from GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

func (p recordPayload) toModel() models.Record {
	rec := models.Record{
		ID:        p.ID,
		Name:      p.Name,
		Gender:    models.Gender(p.Gender),
		Country:   p.Country,
		CountryID: p.CountryID,
	}
	// Unparseable or absent timestamps render as "-" downstream, so a
	// zero time is fine here.
	if p.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			rec.RequestDate = t
		}
	}
	return rec
}

func payloadFromModel(rec models.Record) recordPayload {
	p := recordPayload{
		ID:        rec.ID,
		Name:      rec.Name,
		Gender:    string(rec.Gender),
		Country:   rec.Country,
		CountryID: rec.CountryID,
	}
	if !rec.RequestDate.IsZero() {
		p.CreatedAt = rec.RequestDate.UTC().Format(time.RFC3339)
	}
	return p
}

// HealthCheck hits the /healthz endpoint to verify server reachability.
func (c *Client) HealthCheck() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do("GET", "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRecords fetches all records from the remote store.
func (c *Client) ListRecords() ([]models.Record, error) {
	var payload []recordPayload
	if err := c.do("GET", "/taxes", nil, &payload); err != nil {
		return nil, err
	}
	records := make([]models.Record, 0, len(payload))
	for _, p := range payload {
		records = append(records, p.toModel())
	}
	return records, nil
}

// ListCategories fetches all country categories from the remote store.
func (c *Client) ListCategories() ([]models.Category, error) {
	var payload []categoryPayload
	if err := c.do("GET", "/countries", nil, &payload); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(payload))
	for _, p := range payload {
		categories = append(categories, models.Category{ID: p.ID, Name: p.Name})
	}
	return categories, nil
}

// UpdateRecord performs an idempotent full-replace write and returns the
// server-confirmed record.
func (c *Client) UpdateRecord(id string, rec models.Record) (models.Record, error) {
	var resp recordPayload
	path := "/taxes/" + url.PathEscape(id)
	if err := c.do("PUT", path, payloadFromModel(rec), &resp); err != nil {
		return models.Record{}, err
	}
	return resp.toModel(), nil
}

// --- HTTP helpers ---

// apiError is the standard error body from the server.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// do executes an HTTP request with a JSON body and decodes a JSON result.
func (c *Client) do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
			case http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
			default:
				return &apiErr
			}
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
