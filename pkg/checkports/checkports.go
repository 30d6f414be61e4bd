package checkports

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Code-Monger/LocalLoom/pkg/fetcher"
	"github.com/Code-Monger/LocalLoom/pkg/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// serviceHints names the services commonly found on each probed port
var serviceHints = map[int]string{
	3000: "React, Next.js, Express",
	3001: "React (secondary)",
	4000: "various",
	5000: "Flask, Python",
	5173: "Vite",
	5174: "Vite (secondary)",
	8000: "Django, FastAPI",
	8080: "Java, various",
	8888: "Jupyter",
}

// ScanPorts probes every configured port and returns one entry per port.
// Probes run concurrently, but entries come back in the configured list
// order, not completion order.
func ScanPorts(ctx context.Context) []PortScanEntry {
	cfg := GetConfig()

	entries := make([]PortScanEntry, len(cfg.Ports))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, port := range cfg.Ports {
		g.Go(func() error {
			entries[i] = probePort(groupCtx, port, cfg.ProbeTimeout)
			return nil
		})
	}
	// Probes record their failures in the entry, never as group errors
	_ = g.Wait()

	return entries
}

// probePort issues one short GET against a port. Any HTTP response,
// whatever its status, counts as reachable.
func probePort(ctx context.Context, port int, timeoutSeconds int) PortScanEntry {
	entry := PortScanEntry{Port: port}

	result := fetcher.Fetch(ctx, fetcher.FetchRequest{
		URL:     fmt.Sprintf("http://localhost:%d/", port),
		Timeout: timeoutSeconds,
	})
	entry.LatencyMs = result.Elapsed.Milliseconds()

	if result.Error == "" {
		entry.Reachable = true
		entry.StatusCode = result.StatusCode
		return entry
	}

	switch result.ErrorKind {
	case fetcher.ErrKindTimeout:
		entry.Error = "timeout (might be busy)"
	case fetcher.ErrKindNetwork:
		entry.Error = "closed / not responding"
	default:
		entry.Error = result.Error
	}

	return entry
}

// FormatScanResults renders scan entries as the markdown report handed
// back to the calling runtime
func FormatScanResults(entries []PortScanEntry) string {
	text := "## Local Port Scan Results\n\n"

	for _, entry := range entries {
		var status string
		if entry.Reachable {
			status = fmt.Sprintf("**OPEN** - Status %d", entry.StatusCode)
		} else {
			status = entry.Error
		}

		if hint, ok := serviceHints[entry.Port]; ok {
			text += fmt.Sprintf("- **Port %d** (%s): %s\n", entry.Port, hint, status)
		} else {
			text += fmt.Sprintf("- **Port %d:** %s\n", entry.Port, status)
		}
	}

	return text
}

// Handler handles check_ports requests
func Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Log the request
	log.Printf("[CheckPorts] Received request: %s", request.Params.Name)

	startTime := time.Now()
	entries := ScanPorts(ctx)
	scanDuration := time.Since(startTime)

	openCount := 0
	for _, entry := range entries {
		if entry.Reachable {
			openCount++
		}
	}
	log.Printf("[CheckPorts] Scanned %d ports (%d open) in %v", len(entries), openCount, scanDuration)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: FormatScanResults(entries),
			},
		},
	}, nil
}

// Register registers the check_ports tool with the MCP server
func Register(mcpServer *server.MCPServer) {
	// Create the tool definition
	checkPortsTool := mcp.NewTool("check_ports",
		mcp.WithDescription("Scans common development ports on localhost to see what's running: 3000 (React, Next.js, Express), 3001 (React secondary), 4000 (various), 5000 (Flask, Python), 5173 (Vite), 5174 (Vite secondary), 8000 (Django, FastAPI), 8080 (Java, various), 8888 (Jupyter)"),
	)

	// Wrap the handler with stats tracking
	wrappedHandler := stats.WrapHandler("check_ports", Handler)

	// Register the tool with the wrapped handler
	mcpServer.AddTool(checkPortsTool, wrappedHandler)

	log.Printf("[CheckPorts] Registered check_ports tool")
}
