package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/nathanbaker/peek/internal/sensor"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .peek.yaml configuration file.
type Config struct {
	Version int                     `yaml:"version" mapstructure:"version"`
	Default string                  `yaml:"default" mapstructure:"default"`
	Sensors map[string]SensorConfig `yaml:"sensors" mapstructure:"sensors"`
	Serve   ServeConfig             `yaml:"serve" mapstructure:"serve"`
}

// SensorConfig declares one named sensor instance.
type SensorConfig struct {
	// Type selects the registered sensor ("script" or "service").
	Type string `yaml:"type" mapstructure:"type"`

	// Rate is the minimum interval between data-source fetches.
	Rate time.Duration `yaml:"rate" mapstructure:"rate"`

	// Format is the template rendered on every sample.
	Format string `yaml:"format" mapstructure:"format"`

	// Timeout bounds one fetch (command run or per-unit status query).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Script sensor settings.
	Command   string `yaml:"command" mapstructure:"command"`
	Parser    string `yaml:"parser" mapstructure:"parser"`
	Separator string `yaml:"separator" mapstructure:"separator"`
	MaxLines  int    `yaml:"max_lines" mapstructure:"max_lines"`
	MaxOutput int64  `yaml:"max_output" mapstructure:"max_output"`

	// Service sensor settings.
	Units       []string `yaml:"units" mapstructure:"units"`
	StripPrefix string   `yaml:"strip_prefix" mapstructure:"strip_prefix"`
}

// ServeConfig controls the peek serve HTTP endpoint.
type ServeConfig struct {
	// Listen is the address for /metrics and /sensors.
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Sensors: make(map[string]SensorConfig),
		Serve: ServeConfig{
			Listen: "127.0.0.1:9666",
		},
	}
}

// DefaultRate is used when a sensor declares no rate of its own.
const DefaultRate = 2 * time.Second

// EffectiveRate returns the configured rate or the default.
func (sc SensorConfig) EffectiveRate() time.Duration {
	if sc.Rate > 0 {
		return sc.Rate
	}
	return DefaultRate
}

// EffectiveFormat returns the configured format, or a per-type default
// that shows the first row (script) or the aggregate summary (service).
func (sc SensorConfig) EffectiveFormat() string {
	if sc.Format != "" {
		return sc.Format
	}
	if sc.Type == "service" {
		return "{8}"
	}
	return "{0}"
}

// Instance flattens the declaration into the key→value form the sensor
// contract takes, with the instance name injected.
func (sc SensorConfig) Instance(name string) sensor.Config {
	cfg := sensor.Config{"name": name}

	if sc.Command != "" {
		cfg["command"] = sc.Command
	}
	if sc.Parser != "" {
		cfg["parser"] = sc.Parser
	}
	if sc.Separator != "" {
		cfg["separator"] = sc.Separator
	}
	if sc.MaxLines > 0 {
		cfg["max_lines"] = strconv.Itoa(sc.MaxLines)
	}
	if sc.MaxOutput > 0 {
		cfg["max_output"] = strconv.FormatInt(sc.MaxOutput, 10)
	}
	if len(sc.Units) > 0 {
		cfg["units"] = strings.Join(sc.Units, ",")
	}
	if sc.StripPrefix != "" {
		cfg["strip_prefix"] = sc.StripPrefix
	}
	if sc.Timeout > 0 {
		cfg["timeout"] = sc.Timeout.String()
	}

	return cfg
}
