package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathanbaker/peek/internal/config"
	"github.com/nathanbaker/peek/internal/sensor"
	"github.com/nathanbaker/peek/internal/ui"
	"github.com/nathanbaker/peek/internal/util"
)

// listCommand prints the registered sensor types with their settings
// schemas, then the instances declared in the active config.
func listCommand() error {
	titleStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	fmt.Println(titleStyle.Render("Sensor types"))
	for _, kind := range sensor.Kinds() {
		s, err := sensor.New(kind)
		if err != nil {
			continue
		}
		settings := s.Settings()

		fmt.Printf("  %s  %s\n", titleStyle.Render(settings.Name),
			mutedStyle.Render(settings.Description))
		fmt.Printf("    identity: %s\n", util.JoinOrNone(settings.IdentityFields))
		for _, field := range settings.Fields {
			required := ""
			if field.Required {
				required = " (required)"
			}
			def := ""
			if field.Default != "" {
				def = " [default: " + field.Default + "]"
			}
			fmt.Printf("    %-14s %s%s%s\n", field.Name,
				field.Description, required, mutedStyle.Render(def))
		}
	}

	// Configured instances are optional: list still works without a config.
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Configured sensors"))
	if len(cfg.Sensors) == 0 {
		fmt.Println(mutedStyle.Render("  (none - run 'peek init' to create a config)"))
		return nil
	}

	names := make([]string, 0, len(cfg.Sensors))
	for name := range cfg.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sc := cfg.Sensors[name]
		marker := " "
		if name == cfg.Default {
			marker = "*"
		}
		fmt.Printf("  %s %-16s type=%s rate=%s format=%q\n",
			marker, name, sc.Type, sc.EffectiveRate(), sc.EffectiveFormat())
	}

	return nil
}
