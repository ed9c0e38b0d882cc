package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sidepanel/internal/cache"
)

// Command search results are stable for a given phrasing
const (
	promptCacheSize = 100
	promptCacheTTL  = 10 * time.Minute
)

// PCInfo is the machine summary served by the backend. Its shape is owned by
// the backend and passed to the frontend untouched.
type PCInfo map[string]interface{}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant %s returned status %d", e.Path, e.Status)
}

// Client talks to the local assistant backend
type Client struct {
	baseURL string
	client  *http.Client
	prompts *cache.Service[string]
}

// NewClient creates a client for baseURL, e.g. http://localhost:8000
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		prompts: cache.New[string](promptCacheSize, promptCacheTTL),
	}
}

// PCInfo fetches the current machine summary
func (c *Client) PCInfo(ctx context.Context) (PCInfo, error) {
	var info PCInfo
	if err := c.do(ctx, http.MethodGet, "/api/pc-info", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// SendMessage posts a prompt and returns the backend's reply. Blank prompts
// are not sent.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/send", chatRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

type commandSearchRequest struct {
	UserText string `json:"userText"`
}

type commandSearchResponse struct {
	Prompt string `json:"prompt"`
}

// CommandSearch turns free user text into a formatted assistant prompt.
// Results are cached per normalized text.
func (c *Client) CommandSearch(ctx context.Context, userText string) (string, error) {
	if prompt, ok := c.prompts.Get(userText); ok {
		return prompt, nil
	}

	var resp commandSearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/command-search", commandSearchRequest{UserText: userText}, &resp); err != nil {
		return "", err
	}
	c.prompts.Set(userText, resp.Prompt)
	return resp.Prompt, nil
}

// PromptCacheStats reports command search cache usage
func (c *Client) PromptCacheStats() cache.CacheStats {
	return c.prompts.Stats()
}

// Ask runs a command search for userText and sends the resulting prompt.
// It returns the prompt that was sent along with the reply.
func (c *Client) Ask(ctx context.Context, userText string) (prompt, reply string, err error) {
	prompt, err = c.CommandSearch(ctx, userText)
	if err != nil {
		return "", "", fmt.Errorf("command search: %w", err)
	}
	reply, err = c.SendMessage(ctx, prompt)
	if err != nil {
		return prompt, "", err
	}
	return prompt, reply, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("assistant %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("assistant %s: decode response: %w", path, err)
	}
	return nil
}
