package config

import (
	"fmt"
	"strings"
	"time"
)

// APIConfig represents the configuration for the classification backend
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// ClipboardConfig represents the configuration for result export
type ClipboardConfig struct {
	Command []string
}

// GetAPI returns the backend API configuration
func (c *Config) GetAPI() (APIConfig, error) {
	timeout, err := c.GetDuration("api.timeout")
	if err != nil {
		return APIConfig{}, fmt.Errorf("invalid api timeout: %w", err)
	}
	if timeout <= 0 {
		return APIConfig{}, fmt.Errorf("api timeout must be positive, got %s", timeout)
	}

	baseURL := strings.TrimRight(c.GetString("api.base_url"), "/")
	if baseURL == "" {
		return APIConfig{}, fmt.Errorf("api base URL is required")
	}

	return APIConfig{
		BaseURL:   baseURL,
		Timeout:   timeout,
		UserAgent: c.GetString("api.user_agent"),
	}, nil
}

// GetClipboard returns the clipboard configuration
func (c *Config) GetClipboard() ClipboardConfig {
	return ClipboardConfig{
		Command: strings.Fields(c.GetString("clipboard.command")),
	}
}
