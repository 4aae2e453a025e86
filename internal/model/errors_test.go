package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{" 7 ", 7 * time.Second},
		{"0", 0},
		{"-5", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.in); got != tt.want {
			t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHTTPError_Unwrap(t *testing.T) {
	cause := errors.New("body")
	err := error(&HTTPError{StatusCode: 502, Err: cause})

	if !errors.Is(err, cause) {
		t.Error("HTTPError does not unwrap to its cause")
	}
	if got := err.Error(); got != "HTTP 502: body" {
		t.Errorf("Error() = %q", got)
	}
}
