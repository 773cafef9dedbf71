package cfg

import (
	"flag"
	"strings"
	"testing"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	c := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	return c
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	c := defaultConfig(t)
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.SensitivityLevel != "balanced" {
		t.Errorf("SensitivityLevel = %q, want balanced", c.SensitivityLevel)
	}
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"zero drain", func(c *Config) { c.DrainSeconds = 0 }, "DRAIN_SECONDS"},
		{"drain too large", func(c *Config) { c.DrainSeconds = 301 }, "DRAIN_SECONDS"},
		{"zero budget", func(c *Config) { c.ShutdownBudgetSeconds = 0 }, "SHUTDOWN_BUDGET_SECONDS"},
		{"budget not above drain", func(c *Config) { c.ShutdownBudgetSeconds = 60 }, "must be greater than"},
		{"port zero", func(c *Config) { c.APIPort = 0 }, "HTTP_PORT"},
		{"port too large", func(c *Config) { c.APIPort = 70000 }, "HTTP_PORT"},
		{"unknown level", func(c *Config) { c.SensitivityLevel = "paranoid" }, "SENSITIVITY_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := defaultConfig(t)
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidate_JoinsAllErrors(t *testing.T) {
	t.Parallel()

	c := defaultConfig(t)
	c.APIPort = 0
	c.SensitivityLevel = "paranoid"

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, sub := range []string{"HTTP_PORT", "SENSITIVITY_LEVEL"} {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("joined error %q missing %q", err, sub)
		}
	}
}
