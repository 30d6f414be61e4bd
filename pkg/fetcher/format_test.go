package fetcher

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResultSuccess(t *testing.T) {
	result := &FetchResult{
		URL:           "http://localhost:3000/api",
		StatusCode:    200,
		Status:        "200 OK",
		ContentType:   "application/json",
		ContentLength: 11,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"A-First":      "1",
			"Z-Last":       "26",
		},
		Body:    `{"ok":true}`,
		Elapsed: 123 * time.Millisecond,
	}

	text := FormatResult(result)

	assert.Contains(t, text, "## Response from http://localhost:3000/api")
	assert.Contains(t, text, "**Status:** 200 OK")
	assert.Contains(t, text, "**Content-Type:** application/json")
	assert.Contains(t, text, "**Content-Length:** 11 bytes")
	assert.Contains(t, text, "### Headers")
	assert.Contains(t, text, "- A-First: 1")
	assert.Contains(t, text, "### Body")
	assert.Contains(t, text, `{"ok":true}`)
	assert.NotContains(t, text, "123", "Timing must not leak into the rendered report")
}

func TestFormatResultSortsHeaders(t *testing.T) {
	result := &FetchResult{
		URL:    "http://localhost:3000/",
		Status: "200 OK",
		Headers: map[string]string{
			"Zeta":  "z",
			"Alpha": "a",
			"Mid":   "m",
		},
	}

	text := FormatResult(result)

	alpha := strings.Index(text, "- Alpha: a")
	mid := strings.Index(text, "- Mid: m")
	zeta := strings.Index(text, "- Zeta: z")
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, mid)
	require.NotEqual(t, -1, zeta)
	assert.Less(t, alpha, mid, "Headers should render in sorted order")
	assert.Less(t, mid, zeta, "Headers should render in sorted order")
}

func TestFormatResultTruncationMarker(t *testing.T) {
	cfg := GetConfig()
	cfg.MaxBodySize = 32
	SetConfig(cfg)
	defer ResetConfig()

	result := &FetchResult{
		URL:           "http://localhost:8000/big",
		Status:        "200 OK",
		ContentType:   "text/plain",
		ContentLength: 32,
		Body:          strings.Repeat("x", 32),
		Truncated:     true,
	}

	text := FormatResult(result)

	assert.Contains(t, text, "... [truncated - response exceeded 32 bytes]")
}

func TestFormatResultErrors(t *testing.T) {
	testCases := []struct {
		kind   ErrorKind
		prefix string
	}{
		{kind: ErrKindValidation, prefix: "**Validation Error:**"},
		{kind: ErrKindTimeout, prefix: "**Timeout:**"},
		{kind: ErrKindNetwork, prefix: "**Connection Error:**"},
		{kind: ErrKindProtocol, prefix: "**Protocol Error:**"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			result := &FetchResult{
				URL:       "http://localhost:9999/",
				Error:     "something went wrong",
				ErrorKind: tc.kind,
			}

			text := FormatResult(result)

			assert.True(t, strings.HasPrefix(text, tc.prefix), "Got %q", text)
			assert.Contains(t, text, "something went wrong")
			assert.NotContains(t, text, "## Response from", "Error results must not render response sections")
		})
	}
}

func TestFormatResultConnectionErrorHint(t *testing.T) {
	result := &FetchResult{
		URL:       "http://localhost:9999/",
		Error:     "could not connect to http://localhost:9999/: connection refused",
		ErrorKind: ErrKindNetwork,
	}

	text := FormatResult(result)

	assert.Contains(t, text, "Make sure the server is running.")
}
