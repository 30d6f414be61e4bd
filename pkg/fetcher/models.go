package fetcher

import "time"

// ErrorKind classifies a failed fetch attempt.
type ErrorKind string

const (
	// ErrKindValidation marks failures detected before any network attempt
	ErrKindValidation ErrorKind = "validation"

	// ErrKindNetwork marks connection, DNS, and TLS failures
	ErrKindNetwork ErrorKind = "network"

	// ErrKindTimeout marks attempts abandoned after the allotted time
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindProtocol marks malformed HTTP responses and body read failures
	ErrKindProtocol ErrorKind = "protocol"
)

// FetchRequest represents a single HTTP request to perform
type FetchRequest struct {
	// URL is the absolute HTTP or HTTPS URL to fetch
	URL string `json:"url"`

	// Method is the HTTP method; empty defaults to GET
	Method string `json:"method"`

	// Headers are optional request headers applied after the defaults
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the request body, sent only for POST, PUT, and PATCH
	Body string `json:"body,omitempty"`

	// Timeout is the request timeout in seconds; zero means the default
	Timeout int `json:"timeout"`
}

// FetchResult represents the normalized outcome of a fetch attempt.
// Either the response fields (StatusCode and friends) or Error/ErrorKind
// are populated, never both.
type FetchResult struct {
	// URL is the URL that was requested
	URL string `json:"url"`

	// StatusCode is the HTTP status code, zero on failure
	StatusCode int `json:"status_code,omitempty"`

	// Status is the full status line, e.g. "200 OK"
	Status string `json:"status,omitempty"`

	// ContentType is the response Content-Type header, "unknown" when absent
	ContentType string `json:"content_type,omitempty"`

	// ContentLength is the number of body bytes kept
	ContentLength int `json:"content_length"`

	// Headers contains the response headers, first value per key
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the response body decoded as UTF-8 with replacement
	Body string `json:"body,omitempty"`

	// Truncated reports whether the body exceeded the configured size cap
	Truncated bool `json:"truncated,omitempty"`

	// Elapsed is how long the attempt took
	Elapsed time.Duration `json:"elapsed"`

	// Error describes the failure, empty on success
	Error string `json:"error,omitempty"`

	// ErrorKind classifies the failure, empty on success
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}
