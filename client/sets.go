// Package client talks to the sets API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andrewpaige1/fliply-api/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Status     string // e.g. "500 Internal Server Error"
	Message    string // the server's "message" field, when present
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	return e.Status
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SetsClient is a client for the /api/sets routes.
type SetsClient struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*SetsClient)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(s *SetsClient) { s.http = c }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(s *SetsClient) { s.token = token }
}

func NewSetsClient(baseURL string, opts ...Option) *SetsClient {
	c := &SetsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create posts a new set and returns its id.
func (c *SetsClient) Create(ctx context.Context, set *models.FlashcardSet) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/sets/create", set, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return set.ID, nil
	}
	return resp.ID, nil
}

// Update replaces the mutable fields of set id.
func (c *SetsClient) Update(ctx context.Context, id string, set *models.FlashcardSet) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPut, "/api/sets/update/"+url.PathEscape(id), set, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return id, nil
	}
	return resp.ID, nil
}

func (c *SetsClient) Get(ctx context.Context, id string) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	if err := c.do(ctx, http.MethodGet, "/api/sets/"+url.PathEscape(id), nil, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (c *SetsClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		var msg messageResponse
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
