package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/konseloradiksi/soapgen/internal/ai"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"github.com/konseloradiksi/soapgen/internal/httpclient"
	"github.com/konseloradiksi/soapgen/internal/logger"
	"github.com/konseloradiksi/soapgen/internal/models"
)

const (
	DefaultEndpoint       = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel          = "gemini-2.5-flash"
	DefaultAttemptTimeout = 30 * time.Second

	// MaxAttempts bounds the attempt loop, the first try included.
	MaxAttempts = 5

	responseMimeType = "text/plain"
)

var _ ai.TextGenerator = (*Client)(nil)

// Sleeper suspends the caller for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Client calls the Gemini generateContent REST endpoint and retries rate
// limited or unavailable responses with exponential backoff.
type Client struct {
	httpClient     httpclient.HTTPClient
	endpoint       string
	model          string
	attemptTimeout time.Duration
	sleep          Sleeper
}

type Option func(*Client)

func WithHTTPClient(c httpclient.HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithEndpoint(endpoint string) Option {
	return func(cl *Client) {
		if endpoint != "" {
			cl.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(cl *Client) {
		if model != "" {
			cl.model = model
		}
	}
}

func WithAttemptTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.attemptTimeout = d
		}
	}
}

// WithSleeper replaces the timer based wait used between attempts.
func WithSleeper(s Sleeper) Option {
	return func(cl *Client) {
		if s != nil {
			cl.sleep = s
		}
	}
}

// NewClient creates a Client with the default endpoint, model and a 30s
// timeout per attempt.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:     httpclient.NewDefaultHTTPClient(),
		endpoint:       DefaultEndpoint,
		model:          DefaultModel,
		attemptTimeout: DefaultAttemptTimeout,
		sleep:          timerSleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetModelName implements ai.TextGenerator
func (c *Client) GetModelName() string {
	return c.model
}

type (
	part struct {
		Text string `json:"text"`
	}

	content struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}

	generationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	}

	generateContentRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	generateContentResponse struct {
		Candidates []struct {
			Content *struct {
				Parts []struct {
					Text *string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

// Generate sends prompt as a single user message and returns the text of the
// first part of the first candidate.
//
// Only 429 and 503 responses are retried, waiting 1, 2, 4 and 8 seconds
// between the five attempts. Every other failure is returned at once as one
// of the generation AppErrors.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string, progress models.ProgressFunc) (text string, err error) {
	log := logger.FromContext(ctx).With("model", c.model)

	if apiKey == "" {
		log.Warn("generation skipped, API key is missing")
		return "", domainErrors.ErrMissingCredential
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("generation panicked", "panic", r)
			text = ""
			err = domainErrors.ErrAPICall.WithError(fmt.Errorf("panic: %v", r))
			progress.Emit(models.ProgressEvent{Type: models.ProgressFailed, Err: err})
		}
	}()

	payload, err := buildPayload(prompt)
	if err != nil {
		return "", domainErrors.ErrAPICall.WithError(err)
	}

	loop := newAttemptLoop(c, c.generateURL(apiKey), payload, progress)

	start := time.Now()
	text, err = loop.run(ctx)
	if err != nil {
		log.Error("generation failed", "error", err,
			"attempts", loop.attempt+1,
			"duration_ms", time.Since(start).Milliseconds())
		return "", err
	}

	log.Info("generation completed",
		"attempts", loop.attempt+1,
		"size", len(text),
		"duration_ms", time.Since(start).Milliseconds())
	return text, nil
}

func buildPayload(prompt string) ([]byte, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{ResponseMimeType: responseMimeType},
	}
	return json.Marshal(req)
}

func (c *Client) generateURL(apiKey string) string {
	q := url.Values{}
	q.Set("key", apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.endpoint, url.PathEscape(c.model), q.Encode())
}

// send performs one attempt bounded by the per-attempt timeout. It returns
// the status and the full body, or a NETWORK AppError when the exchange
// itself failed.
func (c *Client) send(ctx context.Context, target string, payload []byte) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, domainErrors.ErrAPICall.WithError(redactKey(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, domainErrors.ErrNetwork.WithError(redactKey(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, domainErrors.ErrNetwork.WithError(err)
	}

	return resp.StatusCode, body, nil
}

// parseGeneratedText extracts candidates[0].content.parts[0].text.
func parseGeneratedText(body []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", domainErrors.ErrUnexpectedResponseShape.WithError(err)
	}

	if len(resp.Candidates) == 0 {
		return "", domainErrors.ErrUnexpectedResponseShape.WithContext("missing", "candidates")
	}
	first := resp.Candidates[0]
	if first.Content == nil {
		return "", domainErrors.ErrUnexpectedResponseShape.WithContext("missing", "candidates[0].content")
	}
	if len(first.Content.Parts) == 0 {
		return "", domainErrors.ErrUnexpectedResponseShape.WithContext("missing", "candidates[0].content.parts")
	}
	if first.Content.Parts[0].Text == nil {
		return "", domainErrors.ErrUnexpectedResponseShape.WithContext("missing", "candidates[0].content.parts[0].text")
	}

	return *first.Content.Parts[0].Text, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func isTransient(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// redactKey strips the query string from URL errors so the API key never
// reaches logs or the UI.
func redactKey(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	redacted := urlErr.URL
	if i := strings.Index(redacted, "?"); i >= 0 {
		redacted = redacted[:i]
	}
	return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
