package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ivy-crm-be/internal/pkg/logger"
)

// FallbackAnswer replaces any failed or malformed backend response. User
// visible failures are an apology plus an invitation to rephrase, never a
// stack trace or an error code.
const FallbackAnswer = "Sorry, I couldn't look that up right now. Please try rephrasing your question, or try again in a moment."

// FallbackConfidence caps the confidence of any degraded answer.
const FallbackConfidence = 0.3

// Client talks to the retrieval/analysis backends over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.ILogger
}

func NewClient(baseURL string, timeout time.Duration, log logger.ILogger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// Ask sends a general domain question. Failures degrade to the fixed
// fallback answer; the error is logged, never returned.
func (c *Client) Ask(ctx context.Context, req AskRequest) AskResponse {
	var resp AskResponse
	if err := c.post(ctx, "/ask", req, &resp); err != nil {
		c.logger.Warn("Retrieval", "Ask call degraded", map[string]interface{}{
			"error": err.Error(),
		})
		return AskResponse{
			Answer:     FallbackAnswer,
			Confidence: FallbackConfidence,
			SessionID:  req.SessionID, // token is safe to replay
			Degraded:   true,
		}
	}
	resp.Confidence = clamp(resp.Confidence)
	return resp
}

// AnalyzeEntity asks the backend about one named entity.
func (c *Client) AnalyzeEntity(ctx context.Context, req AnalyzeRequest) AnalyzeResponse {
	var resp AnalyzeResponse
	if err := c.post(ctx, "/analyze", req, &resp); err != nil {
		c.logger.Warn("Retrieval", "Analyze call degraded", map[string]interface{}{
			"entity": req.EntityName,
			"error":  err.Error(),
		})
		return AnalyzeResponse{
			Answer:     FallbackAnswer,
			Confidence: FallbackConfidence,
			Degraded:   true,
		}
	}
	resp.Confidence = clamp(resp.Confidence)
	return resp
}

// Route runs a command/action-capable conversational turn.
func (c *Client) Route(ctx context.Context, req RouteRequest) RouteResponse {
	var resp RouteResponse
	if err := c.post(ctx, "/route", req, &resp); err != nil {
		c.logger.Warn("Retrieval", "Route call degraded", map[string]interface{}{
			"error": err.Error(),
		})
		return RouteResponse{
			AnswerMarkdown: FallbackAnswer,
			Degraded:       true,
		}
	}
	return resp
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
