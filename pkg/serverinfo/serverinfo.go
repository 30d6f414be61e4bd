package serverinfo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/Code-Monger/LocalLoom/pkg/checkports"
	"github.com/Code-Monger/LocalLoom/pkg/fetcher"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HandleServerInfo is the handler function for the server info resource
func HandleServerInfo(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	fetchConfig := fetcher.GetConfig()
	scanConfig := checkports.GetConfig()

	infoStr := fmt.Sprintf("Server Information:\n\n")
	infoStr += fmt.Sprintf("timestamp: %s\n", time.Now().Format(time.RFC3339))
	infoStr += fmt.Sprintf("go_version: %s\n", runtime.Version())
	infoStr += fmt.Sprintf("os: %s\n", runtime.GOOS)
	infoStr += fmt.Sprintf("architecture: %s\n", runtime.GOARCH)
	infoStr += fmt.Sprintf("cpu_cores: %d\n", runtime.NumCPU())
	infoStr += fmt.Sprintf("goroutines: %d\n", runtime.NumGoroutine())
	infoStr += fmt.Sprintf("uptime_seconds: %.0f\n", getUptime())

	infoStr += "\nFetch Configuration:\n\n"
	infoStr += fmt.Sprintf("user_agent: %s\n", fetchConfig.UserAgent)
	infoStr += fmt.Sprintf("default_timeout_seconds: %d\n", fetchConfig.DefaultTimeout)
	infoStr += fmt.Sprintf("timeout_range_seconds: %d-%d\n", fetcher.MinTimeout, fetcher.MaxTimeout)
	infoStr += fmt.Sprintf("max_body_bytes: %d\n", fetchConfig.MaxBodySize)
	infoStr += fmt.Sprintf("max_redirects: %d\n", fetchConfig.MaxRedirects)

	infoStr += "\nPort Scanner:\n\n"
	infoStr += fmt.Sprintf("scan_ports: %v\n", scanConfig.Ports)
	infoStr += fmt.Sprintf("probe_timeout_seconds: %d\n", scanConfig.ProbeTimeout)

	infoStr += "\nMemory:\n\n"
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	infoStr += fmt.Sprintf("alloc_mb: %.2f\n", float64(memStats.Alloc)/1024/1024)
	infoStr += fmt.Sprintf("total_alloc_mb: %.2f\n", float64(memStats.TotalAlloc)/1024/1024)
	infoStr += fmt.Sprintf("sys_mb: %.2f\n", float64(memStats.Sys)/1024/1024)
	infoStr += fmt.Sprintf("num_gc: %d\n", memStats.NumGC)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     infoStr,
		},
	}, nil
}

// RegisterServerInfo registers the server info resource with the MCP server
func RegisterServerInfo(mcpServer *server.MCPServer) {
	mcpServer.AddResource(
		mcp.NewResource(
			"server://info",
			"Server Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleServerInfo,
	)
}

// startTime is used to calculate uptime
var startTime = time.Now()

// getUptime returns the server uptime in seconds
func getUptime() float64 {
	return time.Since(startTime).Seconds()
}
