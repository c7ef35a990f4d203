package config

import "testing"

func validConfig() Config {
	return Config{
		Workers:       4,
		HistoryLimit:  20,
		GenerateHours: 24,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative ping interval", func(c *Config) { c.PingInterval = -1 }, true},
		{"negative ping count", func(c *Config) { c.PingCount = -1 }, true},
		{"history without database", func(c *Config) { c.ShowHistory = true }, true},
		{"history with database", func(c *Config) { c.ShowHistory = true; c.DatabasePath = "x.db" }, false},
		{"zero history limit", func(c *Config) { c.HistoryLimit = 0 }, true},
		{"generate without directory", func(c *Config) { c.Generate = true; c.GenerateDir = "" }, true},
		{"generate with directory", func(c *Config) { c.Generate = true; c.GenerateDir = "out" }, false},
		{"generate with zero hours", func(c *Config) { c.Generate = true; c.GenerateDir = "out"; c.GenerateHours = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PINGTOOL_TEST_STR", "hello")
	t.Setenv("PINGTOOL_TEST_INT", "7")

	if got := envString("PINGTOOL_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("envString() = %q, want %q", got, "hello")
	}
	if got := envString("PINGTOOL_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envString() = %q, want fallback", got)
	}
	if got := envInt("PINGTOOL_TEST_INT", 3); got != 7 {
		t.Errorf("envInt() = %d, want 7", got)
	}
	if got := envInt("PINGTOOL_TEST_UNSET", 3); got != 3 {
		t.Errorf("envInt() = %d, want 3", got)
	}
}
