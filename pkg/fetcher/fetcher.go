package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// errTooManyRedirects marks a fetch aborted by the redirect cap
var errTooManyRedirects = errors.New("too many redirects")

// ClampTimeout resolves a requested timeout in seconds into the allowed
// range: non-positive values fall back to the configured default, values
// outside [MinTimeout, MaxTimeout] clamp to the nearest bound.
func ClampTimeout(seconds int) int {
	if seconds <= 0 {
		seconds = GetConfig().DefaultTimeout
	}
	if seconds < MinTimeout {
		return MinTimeout
	}
	if seconds > MaxTimeout {
		return MaxTimeout
	}
	return seconds
}

// validate checks the request before any network attempt and normalizes
// the method and timeout in place
func validate(req *FetchRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return fmt.Errorf("url is required")
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %v", req.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url %q must be absolute with scheme http or https", req.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url %q has no host", req.URL)
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	if !isSupportedMethod(method) {
		if suggestion := suggestMethod(method); suggestion != "" {
			return fmt.Errorf("unsupported HTTP method %q (did you mean %s?)", req.Method, suggestion)
		}
		return fmt.Errorf("unsupported HTTP method %q", req.Method)
	}

	req.Method = method
	req.Timeout = ClampTimeout(req.Timeout)
	return nil
}

// Fetch performs a single HTTP request described by req. Every failure is
// converted into the result's Error field; Fetch never returns a Go error
// and never retries.
func Fetch(ctx context.Context, req FetchRequest) *FetchResult {
	cfg := GetConfig()

	result := &FetchResult{URL: req.URL}

	if err := validate(&req); err != nil {
		result.Error = err.Error()
		result.ErrorKind = ErrKindValidation
		return result
	}

	// Attach the body only for write methods, as the tool contract promises
	var body io.Reader
	if req.Body != "" && methodAllowsBody(req.Method) {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		result.ErrorKind = ErrKindValidation
		return result
	}

	// Default headers first, caller headers override
	httpReq.Header.Set("User-Agent", cfg.UserAgent)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	client := &http.Client{
		Timeout: time.Duration(req.Timeout) * time.Second,
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects: %w", cfg.MaxRedirects, errTooManyRedirects)
			}
			return nil
		},
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.ErrorKind = Classify(err)
		result.Error = describeFailure(result.ErrorKind, &req, err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Status = resp.Status
	result.ContentType = resp.Header.Get("Content-Type")
	if result.ContentType == "" {
		result.ContentType = "unknown"
	}
	result.Headers = flattenHeaders(resp.Header)

	// Read one byte past the cap so truncation is detectable
	raw, err := io.ReadAll(io.LimitReader(resp.Body, int64(cfg.MaxBodySize)+1))
	result.Elapsed = time.Since(start)
	if err != nil {
		kind := ErrKindProtocol
		if isTimeout(err) {
			kind = ErrKindTimeout
		}
		// A failed body read voids the response fields: a result carries
		// either a response or an error, never both
		return &FetchResult{
			URL:       req.URL,
			Elapsed:   result.Elapsed,
			Error:     fmt.Sprintf("failed to read response body from %s: %v", req.URL, err),
			ErrorKind: kind,
		}
	}

	if len(raw) > cfg.MaxBodySize {
		raw = raw[:cfg.MaxBodySize]
		result.Truncated = true
	}

	// Best-effort UTF-8: invalid bytes become replacement runes
	result.Body = strings.ToValidUTF8(string(raw), "�")
	result.ContentLength = len(raw)

	return result
}

// methodAllowsBody reports whether a request body is attached for method
func methodAllowsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// flattenHeaders keeps the first value of each response header
func flattenHeaders(header http.Header) map[string]string {
	headers := make(map[string]string, len(header))
	for key, values := range header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return headers
}

// Classify maps a transport-level error onto the fetch error taxonomy
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case isTimeout(err):
		return ErrKindTimeout
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ErrKindProtocol
	case strings.Contains(err.Error(), "malformed HTTP"):
		return ErrKindProtocol
	default:
		return ErrKindNetwork
	}
}

// isTimeout reports whether err is a deadline or timeout failure
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// describeFailure phrases a transport failure for the tool result
func describeFailure(kind ErrorKind, req *FetchRequest, err error) string {
	switch {
	case kind == ErrKindTimeout:
		return fmt.Sprintf("request to %s timed out after %d seconds", req.URL, req.Timeout)
	case kind == ErrKindNetwork && !errors.Is(err, errTooManyRedirects):
		return fmt.Sprintf("could not connect to %s: %v", req.URL, err)
	default:
		return fmt.Sprintf("request to %s failed: %v", req.URL, err)
	}
}
