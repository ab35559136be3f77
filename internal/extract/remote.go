package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Remote is an HTTP client for an external text-extraction service
type Remote struct {
	baseURL    string
	httpClient *http.Client
}

// extractResponse is the response body of POST /extract
type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// HealthResponse is the response from health check
type HealthResponse struct {
	Status string `json:"status"`
}

// NewRemote creates a client for the service at baseURL
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Health checks if the extraction service is running
func (c *Remote) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check failed: %s", string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}

// IsRunning checks if the service is reachable
func (c *Remote) IsRunning(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "ok"
}

// Extract uploads the document and returns the service's plain text
func (c *Remote) Extract(ctx context.Context, doc Document) (string, error) {
	text, err := c.extract(ctx, doc)
	if err != nil {
		return "", &ExtractionError{Source: doc.Name, Err: err}
	}
	return text, nil
}

func (c *Remote) extract(ctx context.Context, doc Document) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	name := doc.Name
	if name == "" {
		name = "resume"
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/extract", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("extraction failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("extraction service: %s", result.Error)
	}

	return result.Text, nil
}
