package fetchlocalhost

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

// Port bounds for a TCP port number
const (
	MinPort = 1
	MaxPort = 65535
)

// BuildURL assembles the localhost URL targeted by a port and path. An
// empty path means the root, and a missing leading slash is added.
func BuildURL(port int, path string) string {
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("http://localhost:%d%s", port, path)
}

// Handler handles fetch_localhost requests
func Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Log the request
	log.Printf("[FetchLocalhost] Received request: %s", request.Params.Name)

	arguments := request.Params.Arguments

	// Extract port
	port, integral, err := parsePort(arguments["port"])
	if err != nil {
		log.Printf("[FetchLocalhost] Error: %v", err)
		return nil, err
	}
	if !integral || port < MinPort || port > MaxPort {
		// An in-band value problem renders as a validation result so the
		// calling model can read and correct it
		result := &fetcher.FetchResult{
			Error:     fmt.Sprintf("port must be an integer between %d and %d, got %v", MinPort, MaxPort, arguments["port"]),
			ErrorKind: fetcher.ErrKindValidation,
		}
		log.Printf("[FetchLocalhost] Validation failed: %s", result.Error)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fetcher.FormatResult(result),
				},
			},
		}, nil
	}

	// Extract path
	path := "/"
	if pathVal, ok := arguments["path"].(string); ok && pathVal != "" {
		path = pathVal
	}

	// Extract method
	method := ""
	if methodVal, ok := arguments["method"].(string); ok {
		method = methodVal
	}

	// Extract headers
	headers, err := parseHeaders(arguments["headers"])
	if err != nil {
		log.Printf("[FetchLocalhost] Error: %v", err)
		return nil, err
	}

	// Extract body
	body := ""
	if bodyVal, ok := arguments["body"].(string); ok {
		body = bodyVal
	}

	// Extract timeout
	timeout := parseTimeout(arguments["timeout"])

	urlStr := BuildURL(port, path)
	log.Printf("[FetchLocalhost] Fetching %s (method: %q, timeout: %d)", urlStr, method, timeout)

	result := fetcher.Fetch(ctx, fetcher.FetchRequest{
		URL:     urlStr,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
	})

	// Log the outcome
	if result.Error != "" {
		log.Printf("[FetchLocalhost] Fetch failed (%s): %s", result.ErrorKind, result.Error)
	} else {
		log.Printf("[FetchLocalhost] Fetched %s (status: %d, content type: %s, size: %d bytes) in %v",
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

// parsePort reads the port argument. The integral flag reports whether a
// fractional number was sent; only the argument's JSON shape is an error.
func parsePort(raw interface{}) (int, bool, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), v == float64(int(v)), nil
	case int:
		return v, true, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, fmt.Errorf("port must be a number")
		}
		return parsed, true, nil
	default:
		return 0, false, fmt.Errorf("port must be a number")
	}
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

// HandleLocalhostResource is the handler function for the localhost
// resource template. Reading localhost://{port} probes the port with a
// GET request using the default timeout.
func HandleLocalhostResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	// Parse URI to extract the port
	// Format: localhost://port
	uri := request.Params.URI
	portStr := strings.TrimPrefix(uri, "localhost://")
	portStr = strings.TrimSuffix(portStr, "/")

	port, err := strconv.Atoi(portStr)
	if err != nil || port < MinPort || port > MaxPort {
		return nil, fmt.Errorf("invalid localhost resource URI: %s", uri)
	}

	log.Printf("[FetchLocalhost] Reading resource for port %d", port)

	result := fetcher.Fetch(ctx, fetcher.FetchRequest{URL: BuildURL(port, "/")})

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     fetcher.FormatResult(result),
		},
	}, nil
}

// Register registers the fetch_localhost tool and resource template with
// the MCP server
func Register(mcpServer *server.MCPServer) {
	// Create the tool definition
	fetchLocalhostTool := mcp.NewTool("fetch_localhost",
		mcp.WithDescription("Fetches content from a development server on localhost by port and path"),
		mcp.WithNumber("port",
			mcp.Description("The localhost port to connect to (1-65535)"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Request path (default: /)"),
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
	wrappedHandler := stats.WrapHandler("fetch_localhost", Handler)

	// Register the tool
	mcpServer.AddTool(fetchLocalhostTool, wrappedHandler)

	// Register the localhost resource template for port-specific probes
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"localhost://{port}",
			"Localhost Port Probe",
			mcp.WithTemplateMIMEType("text/markdown"),
			mcp.WithTemplateDescription("Fetches the root page of a localhost port"),
		),
		HandleLocalhostResource,
	)

	log.Printf("[FetchLocalhost] Registered fetch_localhost tool and resource template")
}
