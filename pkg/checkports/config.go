package checkports

import (
	"sync"
)

// Config represents the configuration for the port scanner
type Config struct {
	// Ports is the ordered list of ports to probe; scan results follow
	// this order
	Ports []int

	// ProbeTimeout is the per-probe ceiling in seconds
	ProbeTimeout int
}

var (
	// defaultConfig is the default configuration, covering the ports
	// development servers commonly listen on
	defaultConfig = Config{
		Ports:        []int{3000, 3001, 4000, 5000, 5173, 5174, 8000, 8080, 8888},
		ProbeTimeout: 2,
	}

	// configMutex protects the config
	configMutex sync.RWMutex

	// config is the current configuration
	config = defaultConfig
)

// GetConfig returns the current configuration
func GetConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return config
}

// SetConfig sets the configuration
func SetConfig(newConfig Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	config = newConfig
}

// ResetConfig resets the configuration to the default
func ResetConfig() {
	configMutex.Lock()
	defer configMutex.Unlock()
	config = defaultConfig
}
