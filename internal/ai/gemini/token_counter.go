package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/konseloradiksi/soapgen/internal/ai"
	domainErrors "github.com/konseloradiksi/soapgen/internal/errors"
	"google.golang.org/genai"
)

var _ ai.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens through the genai SDK so estimates use
// the same tokenizer as the model.
type TokenCounter struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewTokenCounter creates a TokenCounter for model. baseURL and httpClient
// are optional and default to the SDK values.
func NewTokenCounter(model, baseURL string, httpClient *http.Client) *TokenCounter {
	if model == "" {
		model = DefaultModel
	}
	return &TokenCounter{
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// GetModelName returns the model used for counting.
func (t *TokenCounter) GetModelName() string {
	return t.model
}

// CountTokens implements ai.TokenCounter
func (t *TokenCounter) CountTokens(ctx context.Context, apiKey, prompt string) (int, error) {
	if apiKey == "" {
		return 0, domainErrors.ErrMissingCredential
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: t.httpClient,
	}
	if t.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: t.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return 0, domainErrors.ErrAPICall.WithError(err)
	}

	resp, err := client.Models.CountTokens(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return 0, classifySDKError(err)
	}

	return int(resp.TotalTokens), nil
}

// SDKBaseURL turns a generateContent endpoint such as
// https://host/v1beta into the base URL the SDK expects. The default
// endpoint maps to "" so the SDK keeps its own.
func SDKBaseURL(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" || endpoint == DefaultEndpoint {
		return ""
	}
	for _, version := range []string{"/v1beta", "/v1"} {
		if strings.HasSuffix(endpoint, version) {
			return strings.TrimSuffix(endpoint, version) + "/"
		}
	}
	return endpoint + "/"
}

func classifySDKError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domainErrors.NewHTTPError(apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return domainErrors.NewHTTPError(apiErrPtr.Code, apiErrPtr.Message)
	}
	return domainErrors.ErrNetwork.WithError(err)
}
