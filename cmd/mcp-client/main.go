package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "MCP server URL")
	timeoutSecs = flag.Int("timeout", 60, "Client timeout in seconds")
	testTool    = flag.String("tool", "fetch_url", "Tool to drive (fetch_url, fetch_localhost, check_ports, stats)")
)

func main() {
	flag.Parse()

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSecs)*time.Second)
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Cancel the run context when a termination signal arrives
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("Received signal: %v", sig)
			runCancel()
		case <-ctx.Done():
		}
	}()

	mcpClient := NewClient(*serverURL)
	if err := mcpClient.Run(runCtx, *testTool); err != nil {
		log.Fatalf("Client error: %v", err)
	}

	log.Println("Client operations completed successfully")
}
