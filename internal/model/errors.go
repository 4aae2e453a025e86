package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Error kinds. Call sites wrap one of these together with the cause, so both
// errors.Is(err, ErrFetch) and errors.As(err, &httpErr) work.
var (
	ErrConfig   = errors.New("configuration error")
	ErrFetch    = errors.New("fetch failed")
	ErrSchema   = errors.New("unexpected feed schema")
	ErrDelivery = errors.New("delivery failed")
	ErrPersist  = errors.New("persisting seen set failed")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ParseRetryAfter parses a Retry-After header in its seconds form (e.g. "120").
// It returns zero when the value is absent, unparseable or not positive.
func ParseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
