package vmperf

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero duration", func(c *Config) { c.Duration = 0 }, true},
		{"core override", func(c *Config) { c.Cores = 2 }, true},
		{"zero steps", func(c *Config) { c.Steps = 0 }, false},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }, false},
		{"negative cores", func(c *Config) { c.Cores = -1 }, false},
		{"negative rounds", func(c *Config) { c.Rounds = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !IsConfigError(err) {
				t.Errorf("not a config error: %v", err)
			}
		})
	}
}
