package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("dial tcp: connection refused")
	appErr := ErrNetwork.WithError(baseErr)

	assert.Equal(t, baseErr, appErr.Err)
	assert.Equal(t, TypeNetwork, appErr.Type)
	assert.Equal(t, ErrNetwork.Suggestion, appErr.Suggestion)
	assert.Nil(t, ErrNetwork.Err, "sentinel must not be mutated")
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrAPICall.WithContext("attempt", 2).WithContext("model", "gemini-2.5-flash")

	assert.Equal(t, 2, appErr.Context["attempt"])
	assert.Equal(t, "gemini-2.5-flash", appErr.Context["model"])
	assert.Nil(t, ErrAPICall.Context)
}

func TestAppError_Is(t *testing.T) {
	t.Run("copies keep matching their sentinel", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", ErrMissingCredential.WithError(errors.New("empty")))

		assert.True(t, errors.Is(err, ErrMissingCredential))
		assert.False(t, errors.Is(err, ErrNetwork))
	})

	t.Run("foreign errors do not match", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrAPICall))
	})
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name:     "without underlying error",
			err:      ErrMissingCredential,
			contains: []string{"CREDENTIAL", "API key is missing"},
		},
		{
			name:     "with underlying error",
			err:      ErrAPICall.WithError(errors.New("unexpected EOF")),
			contains: []string{"API_CALL", "error during API call", "unexpected EOF"},
		},
		{
			name:     "http error includes the body",
			err:      NewHTTPError(500, `{"error":"internal"}`),
			contains: []string{"HTTP", "unexpected status 500", `{"error":"internal"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, c := range tt.contains {
				assert.Contains(t, msg, c)
			}
		})
	}
}

func TestNewHTTPError(t *testing.T) {
	err := NewHTTPError(503, "unavailable")

	assert.True(t, errors.Is(err, ErrHTTPStatus))
	assert.Equal(t, 503, StatusCode(err))

	var statusErr *HTTPStatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "unavailable", statusErr.Body)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(ErrNetwork))
	assert.Equal(t, 429, StatusCode(fmt.Errorf("ctx: %w", NewHTTPError(429, ""))))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"missing credential", ErrMissingCredential, TypeCredential},
		{"shape", ErrUnexpectedResponseShape, TypeResponse},
		{"http", NewHTTPError(400, ""), TypeHTTP},
		{"network", ErrNetwork.WithError(errors.New("timeout")), TypeNetwork},
		{"api call", ErrAPICall.WithError(errors.New("x")), TypeAPICall},
		{"foreign", errors.New("plain"), TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
