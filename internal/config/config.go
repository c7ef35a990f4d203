package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
)

// Config holds all configuration for one pingtool run
type Config struct {
	// Analysis inputs and outputs
	Files        []string // files or glob patterns from positional args
	Pattern      string   // -p pattern, used when no positional args given
	OutputPath   string   // text report path, stdout when empty
	MarkdownPath string
	PDFPath      string
	ChartsDir    string
	Workers      int

	// Optional history index
	DatabasePath string
	ShowHistory  bool
	HistoryLimit int

	// Live capture
	PingTarget   string
	PingCount    int
	PingInterval float64
	PingOutput   string
	NoTimestamp  bool

	// Fixture generation
	Generate       bool
	GenerateDir    string
	GenerateHours  int
	AccessPoints   int
	Switches       int
	Gateways       int
	VoIPPhones     int
	Servers        int
	DNSServices    int
	ProblemDevices int
	Seed           int64
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.PingInterval < 0 {
		return fmt.Errorf("ping interval cannot be negative")
	}
	if c.PingCount < 0 {
		return fmt.Errorf("ping count cannot be negative")
	}
	if c.ShowHistory && c.DatabasePath == "" {
		return fmt.Errorf("history requires a database path")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive")
	}
	if c.Generate {
		if c.GenerateDir == "" {
			return fmt.Errorf("generate requires an output directory")
		}
		if c.GenerateHours <= 0 {
			return fmt.Errorf("generate hours must be positive")
		}
	}
	return nil
}

// envString returns an environment override or the fallback
func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// envInt returns an environment override or the fallback
func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		return cast.ToInt(v)
	}
	return fallback
}
