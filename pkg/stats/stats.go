package stats

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToolStats represents statistics for a single tool
type ToolStats struct {
	Name                 string        `json:"name"`
	CallCount            int           `json:"call_count"`
	ErrorCount           int           `json:"error_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	BytesReturned        int           `json:"bytes_returned"`
	LastUsed             time.Time     `json:"last_used"`
}

// SessionStats represents statistics for the current session. Nothing is
// written to disk; the process's lifetime is the whole record.
type SessionStats struct {
	SessionID string                `json:"session_id"`
	StartTime time.Time             `json:"start_time"`
	Tools     map[string]*ToolStats `json:"tools"`
}

// StatsManager manages tool usage statistics
type StatsManager struct {
	sessionStats *SessionStats
	mutex        sync.RWMutex
}

// NewStatsManager creates a new StatsManager
func NewStatsManager() *StatsManager {
	return &StatsManager{
		sessionStats: &SessionStats{
			SessionID: uuid.NewString(),
			StartTime: time.Now(),
			Tools:     make(map[string]*ToolStats),
		},
	}
}

// RecordToolUsage records statistics for a tool usage
func (m *StatsManager) RecordToolUsage(toolName string, executionTime time.Duration, bytesReturned int, isError bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	tool, ok := m.sessionStats.Tools[toolName]
	if !ok {
		tool = &ToolStats{
			Name: toolName,
		}
		m.sessionStats.Tools[toolName] = tool
	}

	tool.CallCount++
	if isError {
		tool.ErrorCount++
	}
	tool.TotalExecutionTime += executionTime
	tool.AverageExecutionTime = tool.TotalExecutionTime / time.Duration(tool.CallCount)
	tool.BytesReturned += bytesReturned
	tool.LastUsed = time.Now()
}

// GetSessionStats returns statistics for the current session
func (m *StatsManager) GetSessionStats() *SessionStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// Create a deep copy to avoid race conditions
	stats := &SessionStats{
		SessionID: m.sessionStats.SessionID,
		StartTime: m.sessionStats.StartTime,
		Tools:     make(map[string]*ToolStats),
	}

	for name, tool := range m.sessionStats.Tools {
		toolCopy := *tool
		stats.Tools[name] = &toolCopy
	}

	return stats
}

// ResetSessionStats clears the recorded usage but keeps the session ID
func (m *StatsManager) ResetSessionStats() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessionStats.StartTime = time.Now()
	m.sessionStats.Tools = make(map[string]*ToolStats)
}

// FormatStats formats statistics as a string
func FormatStats(sessionStats *SessionStats) string {
	result := "Tool Usage Statistics\n\n"

	result += fmt.Sprintf("Session ID: %s\n", sessionStats.SessionID)
	result += fmt.Sprintf("Session started: %s\n", sessionStats.StartTime.Format(time.RFC3339))
	result += fmt.Sprintf("Session duration: %s\n\n", time.Since(sessionStats.StartTime).Round(time.Second))

	if len(sessionStats.Tools) == 0 {
		result += "No tools used in this session.\n"
		return result
	}

	result += "Tool                  | Calls | Errors | Avg Time  | Total Time | Bytes Returned\n"
	result += "----------------------|-------|--------|-----------|------------|---------------\n"

	// Sort tool names so the table renders in a stable order
	names := make([]string, 0, len(sessionStats.Tools))
	for name := range sessionStats.Tools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tool := sessionStats.Tools[name]
		result += fmt.Sprintf("%-22s| %5d | %6d | %9s | %10s | %14d\n",
			tool.Name,
			tool.CallCount,
			tool.ErrorCount,
			tool.AverageExecutionTime.Round(time.Millisecond).String(),
			tool.TotalExecutionTime.Round(time.Millisecond).String(),
			tool.BytesReturned)
	}

	return result
}
