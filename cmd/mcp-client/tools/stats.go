package tools

import (
	"context"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestStats tests the stats tool. A few fetches run first so the
// statistics have something to show.
func TestStats(ctx context.Context, c client.MCPClient) error {
	// Generate some usage to report on
	warmupCalls := []struct {
		tool      string
		arguments map[string]interface{}
	}{
		{
			tool: "fetch_url",
			arguments: map[string]interface{}{
				"url":     "https://example.com",
				"timeout": 10.0,
			},
		},
		{
			tool:      "check_ports",
			arguments: nil,
		},
	}

	for _, call := range warmupCalls {
		callReq := mcp.CallToolRequest{}
		callReq.Params.Name = call.tool
		callReq.Params.Arguments = call.arguments

		if _, err := c.CallTool(ctx, callReq); err != nil {
			log.Printf("Warmup call to %s failed: %v", call.tool, err)
		}

		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("Requesting tool usage statistics...")

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "stats"

	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		log.Printf("Failed to call stats: %v", err)
		return err
	}

	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			log.Printf("stats result:\n%s", textContent.Text)
		}
	}

	return nil
}
