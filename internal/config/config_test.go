package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Port:              "8460",
		Env:               "development",
		JWTSecret:         "secure-secret-at-least-32-chars-long",
		SessionTTL:        168,
		DBPassword:        "secure-password",
		DBSSLMode:         "disable",
		NotificationTTLMs: 5000,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero session ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"negative session ttl", func(c *Config) { c.SessionTTL = -1 }, true},
		{"zero notification ttl", func(c *Config) { c.NotificationTTLMs = 0 }, true},
		{"production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production with weak db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production fully hardened", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	c := baseConfig()
	c.GeneratorDelayMs = 1500

	assert.Equal(t, "168h0m0s", c.SessionDuration().String())
	assert.Equal(t, "5s", c.NotificationTTL().String())
	assert.Equal(t, "1.5s", c.GeneratorDelay().String())
}
