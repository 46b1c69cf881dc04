package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldTraceRequest(t *testing.T) {
	skipped := []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "}
	for _, path := range skipped {
		assert.False(t, shouldTraceRequest(path), "health route %q should not be traced", path)
	}

	traced := []string{"/", "/v1/games", "/v1/leagues/office/standings", "/v1/scores/batch", "/healthz/deep"}
	for _, path := range traced {
		assert.True(t, shouldTraceRequest(path), "route %q should be traced", path)
	}
}
