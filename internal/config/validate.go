package config

import (
	"fmt"
	"sort"

	"github.com/nathanbaker/peek/internal/errors"
)

// Validate checks the loaded configuration for problems a sensor would
// otherwise only discover at init time, so mistakes surface with the file
// context attached.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config version %d is newer than this build supports (%d)",
				cfg.Version, CurrentConfigVersion),
			"Update peek, or lower the 'version' field")
	}

	names := make([]string, 0, len(cfg.Sensors))
	for name := range cfg.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := validateSensor(name, cfg.Sensors[name]); err != nil {
			return err
		}
	}

	if cfg.Default != "" {
		if _, ok := cfg.Sensors[cfg.Default]; !ok {
			return errors.New(errors.ErrConfig,
				"Default sensor not defined: "+cfg.Default,
				"Add it under 'sensors', or point 'default' at an existing one")
		}
	}

	return nil
}

// validateSensor checks one sensor declaration.
func validateSensor(name string, sc SensorConfig) error {
	switch sc.Type {
	case "script":
		if sc.Command == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Sensor '%s' has no command", name),
				"Script sensors need a 'command' to run")
		}
	case "service":
		if len(sc.Units) == 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Sensor '%s' has no units", name),
				"Service sensors need a 'units' list")
		}
	case "":
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sensor '%s' has no type", name),
			"Set 'type' to 'script' or 'service'")
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sensor '%s' has unknown type: %s", name, sc.Type),
			"Supported types are 'script' and 'service'")
	}

	if sc.Separator != "" && len([]rune(sc.Separator)) != 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sensor '%s' separator must be a single character: %q", name, sc.Separator),
			"Common choices are ';', ',' or '|'")
	}

	if sc.Rate < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sensor '%s' has a negative rate", name),
			"Use a positive duration like 2s, or omit it for the default")
	}

	if sc.MaxLines < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sensor '%s' has a negative max_lines", name),
			"Use a non-negative integer (0 keeps all lines)")
	}

	return nil
}
