package fetcher

import (
	"fmt"
	"sort"
)

// FormatResult renders a fetch result as the markdown report handed back
// to the calling runtime. Error results render with a prefix naming the
// failure category; success results render status, headers, and body.
// Timing is deliberately left out so identical responses format
// identically regardless of how long they took.
func FormatResult(result *FetchResult) string {
	if result.Error != "" {
		return formatFailure(result)
	}

	text := fmt.Sprintf("## Response from %s\n\n", result.URL)
	text += fmt.Sprintf("**Status:** %s\n", result.Status)
	text += fmt.Sprintf("**Content-Type:** %s\n", result.ContentType)
	text += fmt.Sprintf("**Content-Length:** %d bytes\n", result.ContentLength)

	text += "\n### Headers\n"
	for _, key := range sortedHeaderKeys(result.Headers) {
		text += fmt.Sprintf("- %s: %s\n", key, result.Headers[key])
	}

	text += "\n### Body\n\n```\n"
	text += result.Body
	if result.Truncated {
		text += fmt.Sprintf("\n\n... [truncated - response exceeded %d bytes]", GetConfig().MaxBodySize)
	}
	text += "\n```"

	return text
}

// formatFailure renders an error result under its taxonomy prefix
func formatFailure(result *FetchResult) string {
	switch result.ErrorKind {
	case ErrKindValidation:
		return fmt.Sprintf("**Validation Error:** %s", result.Error)
	case ErrKindTimeout:
		return fmt.Sprintf("**Timeout:** %s", result.Error)
	case ErrKindNetwork:
		return fmt.Sprintf("**Connection Error:** %s\n\nMake sure the server is running.", result.Error)
	case ErrKindProtocol:
		return fmt.Sprintf("**Protocol Error:** %s", result.Error)
	default:
		return fmt.Sprintf("**Error:** %s", result.Error)
	}
}

// sortedHeaderKeys returns header names in a stable order for rendering
func sortedHeaderKeys(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
