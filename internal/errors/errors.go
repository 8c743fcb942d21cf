package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeCredential    ErrorType = "CREDENTIAL"
	TypeResponse      ErrorType = "RESPONSE"
	TypeHTTP          ErrorType = "HTTP"
	TypeNetwork       ErrorType = "NETWORK"
	TypeAPICall       ErrorType = "API_CALL"
	TypeValidation    ErrorType = "VALIDATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if body, ok := e.Context["body"].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same type and message, so
// sentinels keep matching after WithError/WithContext copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// HTTPStatusError carries a non-success response of the generation API.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// NewHTTPError wraps a non-success status and its body into an AppError of type HTTP.
func NewHTTPError(status int, body string) *AppError {
	return ErrHTTPStatus.
		WithError(&HTTPStatusError{StatusCode: status, Body: body}).
		WithContext("status", status).
		WithContext("body", body)
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// KindOf returns the ErrorType of the first AppError in the chain, or
// TypeInternal for foreign errors.
func KindOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// Generation API errors
var (
	ErrMissingCredential = NewAppError(TypeCredential, "API key is missing", nil).
				WithSuggestion("Get a key at https://aistudio.google.com/ and pass it with --api-key or GEMINI_API_KEY")

	ErrUnexpectedResponseShape = NewAppError(TypeResponse, "unexpected API response format", nil).
					WithSuggestion("This is likely a temporary issue, please try again")

	ErrHTTPStatus = NewAppError(TypeHTTP, "generation API returned an error status", nil).
			WithSuggestion("Check that your API key is valid and that your quota is not exhausted")

	ErrNetwork = NewAppError(TypeNetwork, "network error calling the generation API", nil).
			WithSuggestion("Check your internet connection and try again")

	ErrAPICall = NewAppError(TypeAPICall, "error during API call", nil)
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "configuration is invalid", nil).
				WithSuggestion("Review the file with: soapgen config show")

	ErrUnknownConfigKey = NewAppError(TypeConfiguration, "unknown configuration key", nil).
				WithSuggestion("Valid keys: lang, model, endpoint, addr")
)

// Input errors
var (
	ErrUnknownIssue = NewAppError(TypeValidation, "counseling issue is not in the list", nil).
			WithSuggestion("List the available issues with: soapgen issues")

	ErrGenerationBusy = NewAppError(TypeValidation, "another note is being generated", nil).
				WithSuggestion("Wait for the current generation to finish")
)
