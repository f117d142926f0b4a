package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/spellgrid/internal/model"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SpellPaths []string // hcl files or directories

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	// CacheSize bounds the compiled program cache; 0 selects the default.
	CacheSize int
	// Limits caps the stats a spell may reach before it can be cast.
	Limits map[model.Stat]int
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.CacheSize < 0 {
		return nil, errors.New("cache size cannot be negative")
	}
	for stat, limit := range cfg.Limits {
		if limit < 0 {
			return nil, fmt.Errorf("limit for %s cannot be negative", stat)
		}
	}
	return &cfg, nil
}

// ParseLimits parses a comma-separated list of stat=value pairs, such as
// "cost=100,potency=40".
func ParseLimits(list string) (map[model.Stat]int, error) {
	limits := make(map[model.Stat]int)
	if strings.TrimSpace(list) == "" {
		return limits, nil
	}
	for _, pair := range strings.Split(list, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("invalid limit %q: expected stat=value", pair)
		}
		stat, err := model.ParseStat(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid limit for %s: %w", stat, err)
		}
		limits[stat] = n
	}
	return limits, nil
}
