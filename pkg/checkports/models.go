package checkports

// PortScanEntry represents the outcome of probing a single port
type PortScanEntry struct {
	// Port is the TCP port that was probed
	Port int `json:"port"`

	// Reachable reports whether any HTTP response came back, regardless
	// of its status code
	Reachable bool `json:"reachable"`

	// StatusCode is the HTTP status returned by the server, set only
	// when the port is reachable
	StatusCode int `json:"status_code,omitempty"`

	// Error describes why the port was not reachable, set only when the
	// probe failed
	Error string `json:"error,omitempty"`

	// LatencyMs is how long the probe took in milliseconds
	LatencyMs int64 `json:"latency_ms"`
}
