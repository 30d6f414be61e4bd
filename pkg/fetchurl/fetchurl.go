package fetchurl

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Code-Monger/LocalLoom/pkg/fetcher"
	"github.com/Code-Monger/LocalLoom/pkg/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Handler handles fetch_url requests
func Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Log the request
	log.Printf("[FetchURL] Received request: %s", request.Params.Name)

	arguments := request.Params.Arguments

	// Extract URL
	urlStr, ok := arguments["url"].(string)
	if !ok {
		log.Printf("[FetchURL] Error: url must be a string")
		return nil, fmt.Errorf("url must be a string")
	}

	// Extract method
	method := ""
	if methodVal, ok := arguments["method"].(string); ok {
		method = methodVal
	}

	// Extract headers
	headers, err := parseHeaders(arguments["headers"])
	if err != nil {
		log.Printf("[FetchURL] Error: %v", err)
		return nil, err
	}

	// Extract body
	body := ""
	if bodyVal, ok := arguments["body"].(string); ok {
		body = bodyVal
	}

	// Extract timeout
	timeout := parseTimeout(arguments["timeout"])

	log.Printf("[FetchURL] Fetching %s (method: %q, timeout: %d)", urlStr, method, timeout)

	result := fetcher.Fetch(ctx, fetcher.FetchRequest{
		URL:     urlStr,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	})

	// Log the outcome
	if result.Error != "" {
		log.Printf("[FetchURL] Fetch failed (%s): %s", result.ErrorKind, result.Error)
	} else {
		log.Printf("[FetchURL] Fetched %s (status: %d, content type: %s, size: %d bytes) in %v",
			result.URL, result.StatusCode, result.ContentType, result.ContentLength, result.Elapsed)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: fetcher.FormatResult(result),
			},
		},
	}, nil
}

// parseHeaders converts the raw headers argument into a string map. JSON
// scalar values are stringified; anything else is rejected.
func parseHeaders(raw interface{}) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}

	rawMap, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("headers must be an object of string values")
	}

	headers := make(map[string]string, len(rawMap))
	for key, value := range rawMap {
		switch v := value.(type) {
		case string:
			headers[key] = v
		case float64:
			headers[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			headers[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("header %q must be a string", key)
		}
	}

	return headers, nil
}

// parseTimeout reads the timeout argument, tolerating the numeric shapes
// JSON clients actually send. Zero means "not provided".
func parseTimeout(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return 0
}

// Register registers the fetch_url tool with the MCP server
func Register(mcpServer *server.MCPServer) {
	// Create the tool definition
	fetchURLTool := mcp.NewTool("fetch_url",
		mcp.WithDescription("Fetches content from an HTTP or HTTPS URL and returns the status, headers, and body as markdown"),
		mcp.WithString("url",
			mcp.Description("The URL to fetch (must be absolute, http or https)"),
			mcp.Required(),
		),
		mcp.WithString("method",
			mcp.Description("HTTP method: GET, POST, PUT, DELETE, PATCH, HEAD, or OPTIONS (default: GET)"),
		),
		mcp.WithObject("headers",
			mcp.Description("Request headers as a map of header name to value"),
		),
		mcp.WithString("body",
			mcp.Description("Request body, sent only for POST, PUT, and PATCH"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Timeout in seconds, clamped to the range 1-120 (default: 10)"),
		),
	)

	// Wrap the handler with stats tracking
	wrappedHandler := stats.WrapHandler("fetch_url", Handler)

	// Register the tool with the wrapped handler
	mcpServer.AddTool(fetchURLTool, wrappedHandler)

	log.Printf("[FetchURL] Registered fetch_url tool")
}
