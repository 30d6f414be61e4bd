package stats

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Global stats manager instance
	globalStatsManager *StatsManager
)

// InitStatsManager initializes the global stats manager
func InitStatsManager() {
	globalStatsManager = NewStatsManager()
	log.Printf("[Stats] Started session %s", globalStatsManager.GetSessionStats().SessionID)
}

// GetStatsManager returns the global stats manager
func GetStatsManager() *StatsManager {
	return globalStatsManager
}

// HandleGetStats handles requests to get tool usage statistics
func HandleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Printf("[Stats] Received request to get stats")

	if globalStatsManager == nil {
		log.Printf("[Stats] Error: stats manager not initialized")
		return nil, fmt.Errorf("stats manager not initialized")
	}

	// Get and format the stats
	sessionStats := globalStatsManager.GetSessionStats()
	statsText := FormatStats(sessionStats)

	log.Printf("[Stats] Returning stats information")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: statsText,
			},
		},
	}, nil
}

// RecordToolUsage records statistics for a tool usage
func RecordToolUsage(toolName string, startTime time.Time, result *mcp.CallToolResult, callErr error) {
	if globalStatsManager == nil {
		log.Printf("[Stats] Warning: stats manager not initialized, cannot record tool usage")
		return
	}

	executionTime := time.Since(startTime)
	bytesReturned := measureResultBytes(result)

	log.Printf("[Stats] Recording usage for tool '%s': execution time=%v, bytes returned=%d, error=%v",
		toolName, executionTime, bytesReturned, callErr != nil)

	globalStatsManager.RecordToolUsage(toolName, executionTime, bytesReturned, callErr != nil)
}

// WrapHandler wraps a tool handler with stats tracking. Failed calls are
// recorded too, then returned unchanged.
func WrapHandler(toolName string, handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Record the start time
		startTime := time.Now()

		log.Printf("[Stats] Starting execution of tool '%s'", toolName)

		// Call the original handler
		result, err := handler(ctx, request)

		// Record the usage
		RecordToolUsage(toolName, startTime, result, err)

		if err != nil {
			log.Printf("[Stats] Error executing tool '%s': %v", toolName, err)
			return nil, err
		}

		return result, nil
	}
}

// measureResultBytes sums the text payload sizes in a result
func measureResultBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}

	bytes := 0
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			bytes += len(textContent.Text)
		}
	}

	return bytes
}

// LogSessionSummary prints the session statistics, used at shutdown
func LogSessionSummary() {
	if globalStatsManager == nil {
		return
	}

	sessionStats := globalStatsManager.GetSessionStats()
	log.Printf("[Stats] Session statistics:\n%s", FormatStats(sessionStats))
}

// RegisterStats registers the stats tool with the MCP server
func RegisterStats(mcpServer *server.MCPServer) {
	// The manager may already exist when the host initialized it early
	if globalStatsManager == nil {
		InitStatsManager()
	}

	// Create the tool definition
	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Retrieves usage statistics for this session's tool calls"),
	)

	// Wrap the handler with stats tracking
	wrappedHandler := WrapHandler("stats", HandleGetStats)

	// Register the tool with the wrapped handler
	mcpServer.AddTool(statsTool, wrappedHandler)

	log.Printf("[Stats] Registered stats tool")
}
