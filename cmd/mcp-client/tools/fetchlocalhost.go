package tools

import (
	"context"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestFetchLocalhost tests the fetch_localhost tool
func TestFetchLocalhost(ctx context.Context, c client.MCPClient) error {
	// Define test cases
	testCases := []struct {
		name      string
		arguments map[string]interface{}
	}{
		{
			name: "Root of a common dev port",
			arguments: map[string]interface{}{
				"port": 3000.0,
			},
		},
		{
			name: "Path without a leading slash",
			arguments: map[string]interface{}{
				"port": 8080.0,
				"path": "api/health",
			},
		},
		{
			name: "POST to a local API",
			arguments: map[string]interface{}{
				"port":   8000.0,
				"path":   "/api/echo",
				"method": "POST",
				"body":   `{"ping":true}`,
			},
		},
		{
			name: "Port out of range",
			arguments: map[string]interface{}{
				"port": 70000.0,
			},
		},
		{
			name: "Nothing listening",
			arguments: map[string]interface{}{
				"port":    9999.0,
				"timeout": 5.0,
			},
		},
	}

	// Run test cases
	for _, tc := range testCases {
		log.Printf("Running fetch_localhost test: %s", tc.name)

		callReq := mcp.CallToolRequest{}
		callReq.Params.Name = "fetch_localhost"
		callReq.Params.Arguments = tc.arguments

		result, err := c.CallTool(ctx, callReq)
		if err != nil {
			log.Printf("Failed to call fetch_localhost: %v", err)
			continue
		}

		if len(result.Content) > 0 {
			if textContent, ok := result.Content[0].(mcp.TextContent); ok {
				log.Printf("fetch_localhost result:\n%s", textContent.Text)
			}
		}

		// Add a small delay between tests
		time.Sleep(500 * time.Millisecond)
	}

	return nil
}
