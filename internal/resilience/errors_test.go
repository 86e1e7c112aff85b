package resilience

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient_Nil(t *testing.T) {
	assert.False(t, IsTransient(nil))
}

func TestIsTransient_WrappedTransientError(t *testing.T) {
	inner := NewTransientError(errors.New("overloaded"), 529)
	wrapped := fmt.Errorf("gateway: %w", inner)
	assert.True(t, IsTransient(wrapped))
}

func TestIsTransient_Syscall(t *testing.T) {
	assert.True(t, IsTransient(fmt.Errorf("dial: %w", syscall.ECONNRESET)))
	assert.True(t, IsTransient(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)))
}

func TestIsTransient_StringPatterns(t *testing.T) {
	for _, msg := range []string{
		"request failed with status 429",
		"anthropic: overloaded_error",
		"Post: read tcp: i/o timeout",
		"rate limit exceeded",
		"unexpected 529 response",
	} {
		assert.True(t, IsTransient(errors.New(msg)), "msg=%q", msg)
	}
}

func TestIsTransient_PermanentErrors(t *testing.T) {
	for _, msg := range []string{
		"invalid_request_error: prompt too long",
		"authentication failed",
		"model not found",
	} {
		assert.False(t, IsTransient(errors.New(msg)), "msg=%q", msg)
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504, 529} {
		assert.True(t, IsTransientHTTPStatus(code), "code=%d", code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "code=%d", code)
	}
}
