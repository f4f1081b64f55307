package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/nathanbaker/peek/internal/config"
	"github.com/nathanbaker/peek/internal/errors"
	"github.com/nathanbaker/peek/internal/ui"
	"gopkg.in/yaml.v3"
)

// initCommand creates a new .peek.yaml configuration file with example
// sensors to edit.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Build a starter config with example sensors
	cfg := config.DefaultConfig()
	cfg.Default = "disk"
	cfg.Sensors["disk"] = config.SensorConfig{
		Type:      "script",
		Command:   `df --output=target,pcent / | tail -n +2 | tr -s ' ' ';'`,
		Parser:    "lines",
		Rate:      30 * time.Second,
		Format:    "{0}",
		Separator: ";",
	}
	cfg.Sensors["services"] = config.SensorConfig{
		Type:   "service",
		Units:  []string{"cron.service", "ssh.service"},
		Rate:   10 * time.Second,
		Format: "{8}",
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	// Add a header comment
	header := `# peek configuration
# Run 'peek sample <sensor>' to sample once, 'peek watch' for a live view
# See: https://github.com/nathanbaker/peek for documentation

`
	content := header + string(data)

	// Write config file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  peek list            - See sensor types and instances")
	fmt.Println("  peek sample disk     - Sample a sensor once")
	fmt.Println("  peek watch           - Live table of all sensors")

	return nil
}
