package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Code-Monger/LocalLoom/pkg/checkports"
	"github.com/Code-Monger/LocalLoom/pkg/fetchlocalhost"
	"github.com/Code-Monger/LocalLoom/pkg/fetchurl"
	"github.com/Code-Monger/LocalLoom/pkg/serverinfo"
	"github.com/Code-Monger/LocalLoom/pkg/stats"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

var (
	transport    = flag.String("transport", "stdio", "Transport to serve on: stdio or sse")
	port         = flag.Int("port", 8080, "Port to listen on (sse transport only)")
	baseURL      = flag.String("baseurl", "", "Base URL for the server (e.g., http://localhost:8080)")
	serverName   = flag.String("name", "LocalLoom MCP Server", "Server name")
	serverVer    = flag.String("version", "1.0.0", "Server version")
	instructions = flag.String("instructions",
		"LocalLoom exposes outbound HTTP tools: fetch_url for any URL, fetch_localhost for local dev servers, and check_ports to scan common development ports.",
		"Server instructions")
)

func main() {
	flag.Parse()

	// Load environment overrides from a .env file when present
	if err := godotenv.Load(); err != nil {
		log.Println("[Server] No .env file found, using system environment variables")
	}

	// Create the MCP server
	mcpServer := server.NewMCPServer(
		*serverName,
		*serverVer,
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions(*instructions),
	)

	// Initialize stats service
	stats.InitStatsManager()

	// Register tools and resources
	serverinfo.RegisterServerInfo(mcpServer)
	fetchurl.Register(mcpServer)
	fetchlocalhost.Register(mcpServer)
	checkports.Register(mcpServer)
	stats.RegisterStats(mcpServer)

	switch *transport {
	case "stdio":
		serveStdio(mcpServer)
	case "sse":
		serveSSE(mcpServer)
	default:
		log.Fatalf("[Server] Unknown transport %q (expected stdio or sse)", *transport)
	}
}

// serveStdio runs the server over stdin/stdout until the host closes the
// pipe. Logging stays on stderr, leaving stdout to the protocol.
func serveStdio(mcpServer *server.MCPServer) {
	log.Printf("[Server] Starting MCP server on stdio...")

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("[Server] Server error: %v", err)
	}

	// Print final stats before exiting
	stats.LogSessionSummary()
	log.Println("[Server] Server stopped")
}

// serveSSE runs the server over HTTP with server-sent events until
// interrupted
func serveSSE(mcpServer *server.MCPServer) {
	baseURLValue := *baseURL
	if baseURLValue == "" {
		baseURLValue = fmt.Sprintf("http://localhost:%d", *port)
	}

	// Create SSE server
	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURLValue),
		server.WithSSEEndpoint("/"),
		server.WithMessageEndpoint("/messages"),
	)

	// Set up HTTP server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: sseServer,
	}

	// Set up signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		log.Printf("[Server] Starting MCP server on port %d...", *port)
		log.Printf("[Server] Base URL: %s", baseURLValue)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop

	// Create a deadline for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	log.Println("[Server] Shutting down server...")

	// Print final stats before shutdown
	stats.LogSessionSummary()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[Server] Server shutdown failed: %v", err)
	}
	log.Println("[Server] Server stopped")
}
