package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"call-quality-go/internal/config"
	"call-quality-go/internal/logger"
)

// UpstreamError is a non-success response from the language-model service.
// Unlike a response that fails validation, a failure to reach the model
// leaves nothing to fall back on, so it always fails the pipeline.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to an OpenAI-style chat completions endpoint.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	log        *logrus.Entry
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:        logger.WithComponent("analysis.client"),
	}
}

// Complete sends the prompt and returns the model's raw free-text reply.
// The reply is expected to be JSON but is not guaranteed to be; validating
// it is the parser's job, not the client's.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.AnalysisKey == "" {
		return "", config.ErrMissingAnalysisKey
	}

	reqBody := map[string]any{
		"model": c.cfg.AnalysisModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	c.log.WithField("prompt_len", len(prompt)).Debug("sending analysis prompt")

	var content string
	var lastErr error
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.UpstreamTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.AnalysisURL, bytes.NewReader(data))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.AnalysisKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
			if resp.StatusCode < 500 {
				return backoff.Permanent(lastErr)
			}
			return lastErr
		}

		var parsed struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(respBody, &parsed); err != nil || len(parsed.Choices) == 0 {
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
			return backoff.Permanent(lastErr)
		}
		content = parsed.Choices[0].Message.Content
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.cfg.UpstreamTimeout
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		c.log.WithError(lastErr).Error("analysis request failed")
		return "", lastErr
	}
	return content, nil
}
