// Package summarizer generates article digests through the Mistral
// chat-completions API.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	config "github.com/jonesrussell/wikicrawl/internal/config/summarizer"
	"github.com/jonesrussell/wikicrawl/internal/logger"
)

// digestPrompt instructs the model; the article text is appended to it.
const digestPrompt = "Create a short summary of the following text, highlighting its main ideas:\n\n"

// maxErrorBodyBytes limits how much of an API error response is read for logging.
const maxErrorBodyBytes = 4 * 1024

// ErrEmptyCompletion is returned when the API responds without any choices.
var ErrEmptyCompletion = errors.New("summarizer: empty completion response")

// Interface produces a digest for article text.
type Interface interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Client calls the Mistral chat-completions endpoint. Transient failures
// (transport errors, 429, 5xx) are retried with exponential backoff; client
// errors are permanent.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        logger.Interface
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)

// NewClient creates a new summarizer client.
func NewClient(cfg *config.Config, log logger.Interface) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        log.WithComponent("summarizer"),
	}
}

// chatRequest is the chat-completions request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single chat turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize generates a digest for the given text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: digestPrompt + text}},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	var digest string
	operation := func() error {
		var opErr error
		digest, opErr = c.complete(ctx, payload)
		return opErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)
	if retryErr := backoff.Retry(operation, policy); retryErr != nil {
		return "", retryErr
	}

	return digest, nil
}

// complete performs one chat-completions call.
func (c *Client) complete(ctx context.Context, payload []byte) (string, error) {
	req, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.BaseURL+"/chat/completions",
		bytes.NewReader(payload),
	)
	if reqErr != nil {
		return "", backoff.Permanent(fmt.Errorf("create completion request: %w", reqErr))
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		c.log.Warn("completion call failed", "error", doErr.Error())
		return "", fmt.Errorf("completion call: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp)
	}

	var completion chatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&completion); decodeErr != nil {
		return "", backoff.Permanent(fmt.Errorf("decode completion response: %w", decodeErr))
	}

	if len(completion.Choices) == 0 {
		return "", backoff.Permanent(ErrEmptyCompletion)
	}

	return completion.Choices[0].Message.Content, nil
}

// statusError converts a non-200 response into a retryable or permanent error.
// 429 and 5xx are retryable; everything else is permanent.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	err := fmt.Errorf("completion api status %d: %s", resp.StatusCode, bytes.TrimSpace(body))

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		c.log.Warn("completion api transient failure", "status", resp.StatusCode)
		return err
	}

	return backoff.Permanent(err)
}
