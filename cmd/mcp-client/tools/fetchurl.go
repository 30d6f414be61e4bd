// Package tools provides driver functions that exercise the server's
// tools from a connected MCP client.
package tools

import (
	"context"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestFetchURL tests the fetch_url tool
func TestFetchURL(ctx context.Context, c client.MCPClient) error {
	// Define test cases
	testCases := []struct {
		name      string
		arguments map[string]interface{}
	}{
		{
			name: "Fetch a public page",
			arguments: map[string]interface{}{
				"url":     "https://example.com",
				"timeout": 10.0,
			},
		},
		{
			name: "POST with headers and body",
			arguments: map[string]interface{}{
				"url":    "https://httpbin.org/post",
				"method": "POST",
				"headers": map[string]interface{}{
					"Content-Type": "application/json",
				},
				"body":    `{"hello":"world"}`,
				"timeout": 15.0,
			},
		},
		{
			name: "Method typo gets a suggestion",
			arguments: map[string]interface{}{
				"url":    "https://example.com",
				"method": "GTE",
			},
		},
		{
			name: "Unsupported scheme",
			arguments: map[string]interface{}{
				"url": "ftp://example.com/file.txt",
			},
		},
		{
			name: "Nothing listening",
			arguments: map[string]interface{}{
				"url":     "http://localhost:9999/",
				"timeout": 5.0,
			},
		},
	}

	// Run test cases
	for _, tc := range testCases {
		log.Printf("Running fetch_url test: %s", tc.name)

		callReq := mcp.CallToolRequest{}
		callReq.Params.Name = "fetch_url"
		callReq.Params.Arguments = tc.arguments

		result, err := c.CallTool(ctx, callReq)
		if err != nil {
			log.Printf("Failed to call fetch_url: %v", err)
			continue
		}

		if len(result.Content) > 0 {
			if textContent, ok := result.Content[0].(mcp.TextContent); ok {
				log.Printf("fetch_url result:\n%s", textContent.Text)
			}
		}

		// Add a small delay between tests
		time.Sleep(500 * time.Millisecond)
	}

	return nil
}
