// Package sensor defines the contract between the host panel engine and
// pluggable data sources, plus the registry and rate gate they share.
//
// A sensor is constructed per configured instance, initialized once with
// its configuration, then sampled repeatedly by the host. Sampling never
// fails: every failure mode is absorbed into the rendered value through
// format tokens, and the sensor keeps serving its last known good state.
package sensor

import (
	"context"
	"time"
)

// Config is the raw key→value configuration for one sensor instance.
type Config map[string]string

// Get returns the value for key, or def when absent or empty.
func (c Config) Get(key, def string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}
	return def
}

// Result is the outcome of one sample cycle.
type Result struct {
	// Value is the rendered display string.
	Value string `json:"value"`

	// Min is always 0; the numeric range is consumer-interpreted.
	Min float64 `json:"min"`

	// Max is the column, line, or resource count of the current state.
	Max float64 `json:"max"`
}

// Field describes one configurable setting of a sensor type.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Settings is the configuration metadata for a sensor type.
// It has no runtime effect; hosts use it to build configuration UIs.
type Settings struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Icon           string   `json:"icon" yaml:"icon"`
	Multiple       bool     `json:"multiple" yaml:"multiple"`
	IdentityFields []string `json:"identity_fields" yaml:"identity_fields"`
	Fields         []Field  `json:"field_schema" yaml:"field_schema"`
}

// Sensor is the four-operation contract the host engine drives.
type Sensor interface {
	// Init validates the configuration and returns the instance identity.
	// A non-nil error means validation failed and no instance exists.
	Init(cfg Config) (string, error)

	// Sample renders the sensor's current state against format, fetching
	// fresh data only when rate has elapsed since the last fetch. It never
	// fails; fetch errors surface through tokens like {success}.
	Sample(ctx context.Context, rate time.Duration, format string) Result

	// Stop releases the instance. The sensor must not be sampled after.
	Stop(ctx context.Context) error

	// Settings returns the sensor type's configuration metadata.
	Settings() Settings
}
