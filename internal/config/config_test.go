package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:        "4941",
			TokenSecret: "secure-secret-at-least-32-chars-long",
			DBPassword:  "secure-password",
			DBSSLMode:   "require",
			ImageDir:    "storage/images",
			Env:         "test",
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid test config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing token secret", func(c *Config) { c.TokenSecret = "" }, true},
		{"Missing image dir", func(c *Config) { c.ImageDir = "" }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.TokenSecret = "change-me-in-production"
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.TokenSecret = "short"
		}, true},
		{"Production with weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production with SSL disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production fully hardened", func(c *Config) { c.Env = "production" }, false},
		{"Prod alias is also checked", func(c *Config) {
			c.Env = "prod"
			c.DBSSLMode = ""
		}, true},
		{"Development with SSL disabled", func(c *Config) {
			c.Env = "development"
			c.DBSSLMode = "disable"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
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

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "4941", c.Port)
	assert.Equal(t, "storage/images", c.ImageDir)
	assert.Equal(t, "development", c.Env)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("PORT", "9000")
	os.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "test", c.Env)
}
