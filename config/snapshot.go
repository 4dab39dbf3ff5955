package config

import (
	"fmt"

	"github.com/devfolio/portfolio-backend/logger"
	"gopkg.in/yaml.v3"
)

// Redacted returns a copy of c with every credential masked.
func (c *Config) Redacted() Config {
	out := *c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	out.Database.Password = logger.MaskSensitiveString(c.Database.Password, 3, 0)
	out.Redis.Password = logger.MaskSensitiveString(c.Redis.Password, 3, 0)
	out.Email.ResendAPIKey = logger.MaskSensitiveString(c.Email.ResendAPIKey, 3, 0)
	return out
}

// SnapshotYAML renders the redacted configuration as YAML.
func (c *Config) SnapshotYAML() ([]byte, error) {
	redacted := c.Redacted()
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config snapshot: %w", err)
	}
	return data, nil
}
