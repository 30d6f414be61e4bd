package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedMethod(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		assert.True(t, isSupportedMethod(method), "%s should be supported", method)
	}

	assert.False(t, isSupportedMethod("TRACE"))
	assert.False(t, isSupportedMethod("get"), "Support check expects normalized input")
	assert.False(t, isSupportedMethod(""))
}

func TestSuggestMethod(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "GTE", expected: "GET"},
		{input: "gte", expected: "GET"},
		{input: "PSOT", expected: "POST"},
		{input: "DELTE", expected: "DELETE"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, suggestMethod(tc.input), "suggestMethod(%q)", tc.input)
	}

	assert.Empty(t, suggestMethod("ZZZ"), "Nothing close should yield no suggestion")
}
