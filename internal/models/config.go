package models

// Config holds the server configuration parameters
type Config struct {
	// Search backend connection settings
	BaseURL   string // Search API base URL (e.g. https://search.example.com:8089)
	Username  string // Username for session-key login
	Password  string // Password for session-key login
	AuthToken string // Static API token; when set, session login is skipped

	// HTTP transport settings (stdio transport is used when Port is empty)
	Host string // Bind address for the HTTP transport
	Port string // Port for the HTTP transport

	// Rate limiting configuration
	RequestRateLimit float64 // Maximum backend requests per second
	RequestRateBurst int     // Maximum burst capacity for backend requests

	// Logging
	LogLevel string // zap log level (debug, info, warn, error)
}
