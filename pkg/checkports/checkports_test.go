package checkports

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverPort extracts the port a test server is listening on
func serverPort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return port
}

// closedPort returns a port that was just released, so nothing listens on it
func closedPort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func TestDefaultConfig(t *testing.T) {
	ResetConfig()
	cfg := GetConfig()

	assert.Equal(t, []int{3000, 3001, 4000, 5000, 5173, 5174, 8000, 8080, 8888}, cfg.Ports)
	assert.Equal(t, 2, cfg.ProbeTimeout)
}

func TestScanPortsKeepsConfiguredOrder(t *testing.T) {
	ports := []int{closedPort(t), closedPort(t), closedPort(t)}
	SetConfig(Config{Ports: ports, ProbeTimeout: 2})
	defer ResetConfig()

	entries := ScanPorts(context.Background())

	require.Len(t, entries, len(ports), "One entry per configured port")
	for i, entry := range entries {
		assert.Equal(t, ports[i], entry.Port, "Entry %d should keep list order", i)
	}
}

func TestScanPortsDetectsOpenAndClosedPorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "up")
	}))
	defer server.Close()

	openPort := serverPort(t, server)
	deadPort := closedPort(t)

	SetConfig(Config{Ports: []int{deadPort, openPort}, ProbeTimeout: 2})
	defer ResetConfig()

	entries := ScanPorts(context.Background())
	require.Len(t, entries, 2)

	closed := entries[0]
	assert.Equal(t, deadPort, closed.Port)
	assert.False(t, closed.Reachable)
	assert.Zero(t, closed.StatusCode, "Unreachable entries must not carry a status code")
	assert.Equal(t, "closed / not responding", closed.Error)

	open := entries[1]
	assert.Equal(t, openPort, open.Port)
	assert.True(t, open.Reachable)
	assert.Equal(t, http.StatusOK, open.StatusCode)
	assert.Empty(t, open.Error)
}

func TestScanPortsCountsAnyResponseAsOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	SetConfig(Config{Ports: []int{serverPort(t, server)}, ProbeTimeout: 2})
	defer ResetConfig()

	entries := ScanPorts(context.Background())

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Reachable, "A 404 still proves something is listening")
	assert.Equal(t, http.StatusNotFound, entries[0].StatusCode)
}

func TestFormatScanResults(t *testing.T) {
	entries := []PortScanEntry{
		{Port: 5173, Reachable: true, StatusCode: 200},
		{Port: 9999, Reachable: false, Error: "closed / not responding"},
	}

	text := FormatScanResults(entries)

	assert.Contains(t, text, "## Local Port Scan Results")
	assert.Contains(t, text, "- **Port 5173** (Vite): **OPEN** - Status 200")
	assert.Contains(t, text, "- **Port 9999:** closed / not responding")
}

func TestHandlerReturnsScanReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	SetConfig(Config{Ports: []int{serverPort(t, server), closedPort(t)}, ProbeTimeout: 2})
	defer ResetConfig()

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "check_ports"

	result, err := Handler(context.Background(), callReq)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, textContent.Text, "## Local Port Scan Results")
	assert.Contains(t, textContent.Text, "**OPEN** - Status 200")
	assert.Contains(t, textContent.Text, "closed / not responding")
}
