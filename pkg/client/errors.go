package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the client.
var (
	// ErrMissingAPIKey is returned when an operation needs an API key and none is configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrUnauthorized is returned when the API rejects the configured key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimitExceeded is returned on HTTP 429.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidArgument is returned before any request is made when an
	// identifier or username is malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors other than 429.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 responses.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// statusMessages describes the statuses the API documents.
var statusMessages = map[int]string{
	http.StatusUnauthorized:    "API key is missing or incorrect",
	http.StatusNotFound:        "the requested URI is invalid or the resource does not exist",
	http.StatusTooManyRequests: "the rate limit for this resource has been exhausted",
}

// APIError represents a failed wallhaven request.
type APIError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wallhaven %s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("wallhaven %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status to an error class.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// statusError builds the error for a failed response. A 401 without a
// configured key means the caller needs one, not that the key is wrong.
func statusError(status int, hasAPIKey bool) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		ErrorClass: classifyStatus(status),
		Message:    statusMessages[status],
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized:
		if hasAPIKey {
			apiErr.Err = ErrUnauthorized
		} else {
			apiErr.Err = ErrMissingAPIKey
		}
	case http.StatusNotFound:
		apiErr.Err = ErrNotFound
	case http.StatusTooManyRequests:
		apiErr.Err = ErrRateLimitExceeded
	}

	return apiErr
}

// errorClassOf extracts the class of an error returned by a request attempt.
func errorClassOf(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorClass
	}
	return ""
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassServer:
		return true
	case ErrorClassNetwork:
		return true
	case ErrorClassRateLimit:
		// 429 aborts; the page delay is the only mitigation
		return false
	default:
		return false
	}
}
