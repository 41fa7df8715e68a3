package testutil

import (
	"loghound-mcp/internal/models"
)

// MockConfig creates a mock configuration for testing without requiring
// a real backend or credentials
func MockConfig(baseURL string) models.Config {
	return models.Config{
		BaseURL:          baseURL,
		AuthToken:        "mock-auth-token",
		RequestRateLimit: 100,
		RequestRateBurst: 10,
		LogLevel:         "error",
	}
}
