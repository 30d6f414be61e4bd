package fetcher

import (
	"os"
	"strconv"
	"sync"
)

// Timeout bounds in seconds for a single fetch. Requests outside the
// range are clamped, never rejected.
const (
	MinTimeout = 1
	MaxTimeout = 120
)

// Config represents the configuration for the fetch service
type Config struct {
	// UserAgent is the User-Agent header to use for requests
	UserAgent string

	// DefaultTimeout is the timeout in seconds applied when the caller
	// does not supply one
	DefaultTimeout int

	// MaxBodySize is the maximum number of response body bytes kept
	// before truncation
	MaxBodySize int

	// MaxRedirects is the maximum number of redirects followed per fetch
	MaxRedirects int
}

var (
	// configOnce guards the one-time environment resolution
	configOnce sync.Once

	// configMutex protects the config
	configMutex sync.RWMutex

	// config is the current configuration
	config Config
)

// loadConfig builds the configuration from environment overrides
func loadConfig() Config {
	return Config{
		UserAgent:      getEnv("FETCH_USER_AGENT", "LocalLoom-Fetch/1.0"),
		DefaultTimeout: getEnvInt("FETCH_DEFAULT_TIMEOUT", 10),
		MaxBodySize:    getEnvInt("FETCH_MAX_BODY_SIZE", 500000),
		MaxRedirects:   getEnvInt("FETCH_MAX_REDIRECTS", 10),
	}
}

// ensureConfig resolves environment overrides exactly once, after any
// .env file has been loaded by the host process
func ensureConfig() {
	configOnce.Do(func() {
		configMutex.Lock()
		config = loadConfig()
		configMutex.Unlock()
	})
}

// GetConfig returns the current configuration
func GetConfig() Config {
	ensureConfig()
	configMutex.RLock()
	defer configMutex.RUnlock()
	return config
}

// SetConfig sets the configuration
func SetConfig(newConfig Config) {
	ensureConfig()
	configMutex.Lock()
	defer configMutex.Unlock()
	config = newConfig
}

// ResetConfig resets the configuration to the environment defaults
func ResetConfig() {
	ensureConfig()
	configMutex.Lock()
	defer configMutex.Unlock()
	config = loadConfig()
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as a positive integer or a
// default when unset or unparsable
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
