package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the minimum environment for a loadable configuration.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DOORMAN_STORAGE_ACCESS_KEY_ID", "AKTEST")
	t.Setenv("DOORMAN_STORAGE_SECRET_ACCESS_KEY", "secret")
	t.Setenv("DOORMAN_STORAGE_BUCKET", "media")
	t.Setenv("DOORMAN_STORAGE_ACCOUNT_ID", "acct42")
	t.Setenv("DOORMAN_AUTH_TOKEN_SECRET", "shhh")
}

func TestLoad_DefaultsFromEnvOnly(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8787", cfg.Server.Addr())
	assert.Equal(t, "auto", cfg.Storage.Region)
	assert.Equal(t, "bb_token", cfg.Auth.CookieName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.CORS.Origins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DOORMAN_SERVER_PORT", "9900")
	t.Setenv("DOORMAN_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("DOORMAN_STORAGE_ENDPOINT", "http://localhost:9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9900, cfg.Server.Port)
	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.CORS.Origins(),
	)
	assert.Equal(t, "http://localhost:9000", cfg.Storage.EndpointURL())
}

func TestStorageConfig_EndpointURL(t *testing.T) {
	c := StorageConfig{AccountID: "acct42"}
	assert.Equal(t, "https://acct42.r2.cloudflarestorage.com", c.EndpointURL())

	c.Endpoint = "http://localhost:9000/"
	assert.Equal(t, "http://localhost:9000", c.EndpointURL())
}

func TestValidate_RequiredFields(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8787},
			Storage: StorageConfig{AccessKeyID: "AK", SecretAccessKey: "SK", Bucket: "media", AccountID: "acct"},
			Auth:    AuthConfig{TokenSecret: "shhh"},
			Logging: LoggingConfig{Level: "info"},
		}
	}

	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing credentials", func(c *Config) { c.Storage.SecretAccessKey = "" }},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }},
		{"missing account and endpoint", func(c *Config) { c.Storage.AccountID = "" }},
		{"missing token secret", func(c *Config) { c.Auth.TokenSecret = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_EndpointCanReplaceAccountID(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8787},
		Storage: StorageConfig{AccessKeyID: "AK", SecretAccessKey: "SK", Bucket: "media", Endpoint: "http://localhost:9000"},
		Auth:    AuthConfig{TokenSecret: "shhh"},
		Logging: LoggingConfig{Level: "info"},
	}
	assert.NoError(t, cfg.Validate())
}
