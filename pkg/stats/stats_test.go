package stats

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolUsage(t *testing.T) {
	manager := NewStatsManager()

	manager.RecordToolUsage("fetch_url", 100*time.Millisecond, 500, false)
	manager.RecordToolUsage("fetch_url", 300*time.Millisecond, 1500, true)

	sessionStats := manager.GetSessionStats()
	require.Contains(t, sessionStats.Tools, "fetch_url")

	tool := sessionStats.Tools["fetch_url"]
	assert.Equal(t, "fetch_url", tool.Name)
	assert.Equal(t, 2, tool.CallCount)
	assert.Equal(t, 1, tool.ErrorCount)
	assert.Equal(t, 400*time.Millisecond, tool.TotalExecutionTime)
	assert.Equal(t, 200*time.Millisecond, tool.AverageExecutionTime)
	assert.Equal(t, 2000, tool.BytesReturned)
	assert.False(t, tool.LastUsed.IsZero())
}

func TestSessionHasStableID(t *testing.T) {
	manager := NewStatsManager()

	first := manager.GetSessionStats().SessionID
	second := manager.GetSessionStats().SessionID

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second, "Session ID should not change between reads")
	assert.NotEqual(t, first, NewStatsManager().GetSessionStats().SessionID,
		"Each manager should get its own session ID")
}

func TestGetSessionStatsReturnsCopy(t *testing.T) {
	manager := NewStatsManager()
	manager.RecordToolUsage("check_ports", 50*time.Millisecond, 100, false)

	sessionStats := manager.GetSessionStats()
	sessionStats.Tools["check_ports"].CallCount = 999
	sessionStats.Tools["injected"] = &ToolStats{Name: "injected"}

	fresh := manager.GetSessionStats()
	assert.Equal(t, 1, fresh.Tools["check_ports"].CallCount, "Mutating a copy must not change the manager")
	assert.NotContains(t, fresh.Tools, "injected")
}

func TestResetSessionStats(t *testing.T) {
	manager := NewStatsManager()
	manager.RecordToolUsage("fetch_localhost", 10*time.Millisecond, 50, false)
	sessionID := manager.GetSessionStats().SessionID

	manager.ResetSessionStats()

	sessionStats := manager.GetSessionStats()
	assert.Empty(t, sessionStats.Tools, "Reset should clear recorded usage")
	assert.Equal(t, sessionID, sessionStats.SessionID, "Reset should keep the session ID")
}

func TestFormatStatsWithNoUsage(t *testing.T) {
	manager := NewStatsManager()

	text := FormatStats(manager.GetSessionStats())

	assert.Contains(t, text, "Tool Usage Statistics")
	assert.Contains(t, text, "Session ID: ")
	assert.Contains(t, text, "No tools used in this session.")
}

func TestFormatStatsRendersSortedTable(t *testing.T) {
	manager := NewStatsManager()
	manager.RecordToolUsage("stats", 5*time.Millisecond, 10, false)
	manager.RecordToolUsage("check_ports", 20*time.Millisecond, 300, false)
	manager.RecordToolUsage("fetch_url", 15*time.Millisecond, 200, true)

	text := FormatStats(manager.GetSessionStats())

	assert.Contains(t, text, "Tool                  | Calls | Errors | Avg Time  | Total Time | Bytes Returned")

	checkPorts := strings.Index(text, "check_ports")
	fetchURL := strings.Index(text, "fetch_url")
	statsTool := strings.Index(text, "stats ")
	require.NotEqual(t, -1, checkPorts)
	require.NotEqual(t, -1, fetchURL)
	assert.Less(t, checkPorts, fetchURL, "Table rows should be sorted by tool name")
	assert.Less(t, fetchURL, statsTool, "Table rows should be sorted by tool name")
}

func TestWrapHandlerRecordsSuccess(t *testing.T) {
	InitStatsManager()

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "twelve bytes"},
			},
		}, nil
	}

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "demo_tool"

	result, err := WrapHandler("demo_tool", handler)(context.Background(), callReq)

	require.NoError(t, err)
	require.NotNil(t, result)

	tool := GetStatsManager().GetSessionStats().Tools["demo_tool"]
	require.NotNil(t, tool, "Usage should be recorded under the tool name")
	assert.Equal(t, 1, tool.CallCount)
	assert.Equal(t, 0, tool.ErrorCount)
	assert.Equal(t, len("twelve bytes"), tool.BytesReturned)
}

func TestWrapHandlerRecordsFailure(t *testing.T) {
	InitStatsManager()

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, fmt.Errorf("boom")
	}

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "failing_tool"

	_, err := WrapHandler("failing_tool", handler)(context.Background(), callReq)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	tool := GetStatsManager().GetSessionStats().Tools["failing_tool"]
	require.NotNil(t, tool, "Failures should still be recorded")
	assert.Equal(t, 1, tool.CallCount)
	assert.Equal(t, 1, tool.ErrorCount)
	assert.Equal(t, 0, tool.BytesReturned)
}

func TestMeasureResultBytes(t *testing.T) {
	assert.Equal(t, 0, measureResultBytes(nil))

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: "abcd"},
			mcp.TextContent{Type: "text", Text: "efg"},
		},
	}
	assert.Equal(t, 7, measureResultBytes(result))
}
