package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0 (got %d)", c.Upload.MaxBytes)
	}
	if strings.TrimSpace(c.Upload.Dir) == "" {
		return fmt.Errorf("upload.dir is required")
	}

	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	if err := c.Delivery.validate(); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}

	return nil
}

func (m *MailConfig) validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Host == "" {
		return fmt.Errorf("host is required when mail is enabled")
	}
	if m.Port <= 0 {
		return fmt.Errorf("port must be > 0 (got %d)", m.Port)
	}
	if m.From == "" {
		return fmt.Errorf("from is required when mail is enabled")
	}
	return nil
}

func (d *DeliveryConfig) validate() error {
	if d.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %s)", d.PollInterval)
	}
	if d.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", d.BatchSize)
	}
	if d.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", d.MaxAttempts)
	}
	if d.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", d.RetentionDays)
	}
	return nil
}
