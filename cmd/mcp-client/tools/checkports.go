package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestCheckPorts tests the check_ports tool
func TestCheckPorts(ctx context.Context, c client.MCPClient) error {
	log.Printf("Running check_ports scan...")

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "check_ports"

	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		log.Printf("Failed to call check_ports: %v", err)
		return err
	}

	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			log.Printf("check_ports result:\n%s", textContent.Text)
		}
	}

	return nil
}
