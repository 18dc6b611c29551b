// Package client is a typed Go client over the contacts HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/umalmyha/contacts/internal/model"
)

// Client talks to the contacts API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type OptionFunc func(*Client)

// WithHTTPClient overrides transport used for API calls
func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New builds Client for API served at baseURL
func New(baseURL string, funcs ...OptionFunc) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url - %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
	}

	for _, fn := range funcs {
		fn(c)
	}
	return c, nil
}

// ListQuery narrows down listed contacts, zero value lists everything
type ListQuery struct {
	Status model.Status
	Search string
}

// APIError is a non-2xx API response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded with status %d - %s", e.StatusCode, e.Message)
}

// Create persists new contact and returns it with generated fields assigned
func (c *Client) Create(ctx context.Context, nc model.NewContact) (*model.Contact, error) {
	var created model.Contact
	if err := c.jsonRequest(ctx, http.MethodPost, "/contacts", nil, &nc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns contacts matching query sorted by creation time descending
func (c *Client) List(ctx context.Context, q ListQuery) ([]model.Contact, error) {
	query := url.Values{}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	contacts := make([]model.Contact, 0)
	if err := c.jsonRequest(ctx, http.MethodGet, "/contacts", query, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get reads single contact, nil is returned when no contact with such id exists
func (c *Client) Get(ctx context.Context, id string) (*model.Contact, error) {
	var contact *model.Contact
	if err := c.jsonRequest(ctx, http.MethodGet, "/contacts/"+url.PathEscape(id), nil, nil, &contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update merges supplied fields into contact with provided id. Nil contact is
// returned when no contact with such id exists - nothing was changed then
func (c *Client) Update(ctx context.Context, id string, upd model.UpdateContact) (*model.Contact, error) {
	var updated *model.Contact
	if err := c.jsonRequest(ctx, http.MethodPut, "/contacts/"+url.PathEscape(id), nil, &upd, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes contact with provided id, succeeds even if contact is already gone
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, query url.Values, body any, result any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body - %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request - %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body - %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: res.StatusCode, Message: errorMessage(res.StatusCode, resBody)}
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(resBody, result); err != nil {
		return fmt.Errorf("failed to decode response body - %w", err)
	}
	return nil
}

func errorMessage(statusCode int, body []byte) string {
	var errRes struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &errRes); err == nil && errRes.Message != "" {
		return errRes.Message
	}
	return http.StatusText(statusCode)
}
