package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"InsightsFeeder/internal/config"
	"InsightsFeeder/internal/ports"
)

const requestTimeout = 30 * time.Second

// Client submits response payloads to the assistant runs endpoint.
type Client struct {
	baseURL     string
	assistantID string
	apiKey      string
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ ports.AssistantClient = (*Client)(nil)

// NewClient builds an assistant API client from configuration. The API key is
// optional; when empty no authentication header is sent.
func NewClient(cfg config.AssistantConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		assistantID: cfg.AssistantID,
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: requestTimeout},
		logger:      logger,
	}
}

// SubmitResponse posts the payload as a single user message and starts one
// assistant run. Any non-2xx status is an error.
func (c *Client) SubmitResponse(ctx context.Context, payload string) error {
	if c.baseURL == "" {
		return fmt.Errorf("assistant api is not configured")
	}

	body, err := json.Marshal(map[string]any{
		"assistant_id": c.assistantID,
		"input": map[string]any{
			"messages": []map[string]string{
				{"role": "user", "content": payload},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("encode run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/runs", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform run request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("assistant api %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	c.debugRunID(resp.Body)
	return nil
}

// debugRunID extracts the run identifier from a successful response, when the
// endpoint returns one, purely for debug logging.
func (c *Client) debugRunID(body io.Reader) {
	if c.logger == nil {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return
	}
	var run struct {
		RunID string `json:"run_id"`
		ID    string `json:"id"`
	}
	if err := json.Unmarshal(raw, &run); err != nil {
		return
	}
	id := run.RunID
	if id == "" {
		id = run.ID
	}
	if id != "" {
		c.logger.Debug("assistant run started", "run_id", id)
	}
}
