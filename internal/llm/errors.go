package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RateLimitError is returned when the provider throttled the request.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// InvalidResponseError is returned when the reply is not JSON or does not
// satisfy the request schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("llm: invalid response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// UnavailableError is returned when the provider could not serve the request.
type UnavailableError struct {
	Status int
	Err    error
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Err == nil:
		return "llm: provider unavailable"
	case e.Status != 0:
		return fmt.Sprintf("llm: provider unavailable (HTTP %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError is returned when the reply hit the token limit.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "llm: response truncated at max tokens"
}

// ClientError is returned for request errors that retrying cannot fix, such
// as a bad API key or an unknown model.
type ClientError struct {
	Status int
	Err    error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("llm: request rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// classifyStatus maps an SDK error carrying an HTTP status to one of the
// package error types. A zero status means the request never got a reply.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Err: err}
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout:
		return &ClientError{Status: status, Err: err}
	}
	return &UnavailableError{Status: status, Err: err}
}

// retryClass says how the retry middleware treats an error.
type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var (
		truncated *TruncatedError
		client    *ClientError
		invalid   *InvalidResponseError
	)
	switch {
	case errors.As(err, &truncated), errors.As(err, &client):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}
