// Package api is the client for the remote PromptPocket REST service.
// The contract is fixed: bearer-token auth, JSON bodies, a {data: ...}
// success envelope, and a {message?: string} error shape. No call is
// ever retried here; retry policy belongs to the callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stefankummer/promptpocket/internal/errors"
)

// User is the identity returned by GET /user.
type User struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Pseudo string `json:"pseudo,omitempty"`
	Email  string `json:"email,omitempty"`
}

// DisplayName returns the best available label for the user.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Pseudo != "" {
		return u.Pseudo
	}
	return "User"
}

// Item is a selectable tool or tag.
type Item struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// PromptCreate is the body for POST /prompts. Optional fields are
// omitted entirely when empty; the server is authoritative for
// everything it assigns.
type PromptCreate struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Status      string   `json:"status"`
	IsPublic    bool     `json:"is_public"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	AITools     []string `json:"ai_tools,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Client talks to one endpoint with one token. Both are fixed at
// construction; popup sessions build a fresh client per session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given endpoint and bearer token. The
// token may be empty for probing an endpoint before login.
func New(endpoint, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(endpoint, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the service's success wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// serviceError is the service's error shape.
type serviceError struct {
	Message string `json:"message"`
}

// do performs a request and decodes the {data} envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternal(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewService(0, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewService(resp.StatusCode, "")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var svcErr serviceError
		_ = json.Unmarshal(data, &svcErr)
		return errors.NewService(resp.StatusCode, svcErr.Message)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.NewService(resp.StatusCode, "malformed response body")
	}
	if env.Data == nil {
		// Some responses are not wrapped; fall back to the raw body.
		env.Data = data
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.NewService(resp.StatusCode, "malformed response body")
	}
	return nil
}

// GetUser validates the token and returns the account identity.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListTools fetches the remote tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/tools", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListTags fetches the remote tag catalog.
func (c *Client) ListTags(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreatePrompt creates a prompt record on the service.
func (c *Client) CreatePrompt(ctx context.Context, p PromptCreate) error {
	return c.do(ctx, http.MethodPost, "/prompts", p, nil)
}
