package cli

import (
	"os"
	"time"

	"github.com/nathanbaker/peek/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	sampleFormatFlag  string
	sampleJSONFlag    bool
	watchIntervalFlag string
	serveListenFlag   string
	initForce         bool
)

// sampleCmd samples one configured sensor and prints the rendered value
var sampleCmd = &cobra.Command{
	Use:   "sample [sensor]",
	Short: "Sample a configured sensor once",
	Long: `Sample a sensor declared in .peek.yaml and print the rendered value.

With no argument the config's 'default' sensor is sampled. The format can
be overridden per invocation to inspect individual tokens.

Examples:
  peek sample disk
  peek sample disk --format "{0.pcent}"
  peek sample services --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return sampleCommand(name, sampleFormatFlag, sampleJSONFlag)
	},
}

// listCmd shows registered sensor types and configured instances
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sensor types and configured instances",
	Long: `List the registered sensor types with their settings schemas, and the
instances declared in the active config file.

Examples:
  peek list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCommand()
	},
}

// watchCmd shows a live table of all configured sensors
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live table of all configured sensors",
	Long: `Start an interactive table that re-samples every configured sensor on
its own rate and shows the rendered values.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  up/k down/j Move selection

Examples:
  peek watch
  peek watch --interval 1s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := time.Second
		if watchIntervalFlag != "" {
			parsed, err := time.ParseDuration(watchIntervalFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid interval: "+watchIntervalFlag,
					"Use a valid duration like 1s, 2s, or 500ms")
			}
			if parsed < 100*time.Millisecond {
				return errors.New(errors.ErrConfig,
					"Interval too short",
					"Minimum refresh interval is 100ms")
			}
			interval = parsed
		}
		return watchCommand(interval)
	},
}

// serveCmd exposes sensors and Prometheus metrics over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sensor values and Prometheus metrics over HTTP",
	Long: `Sample every configured sensor on its own rate and expose the results:

  /sensors   current rendered values as JSON
  /metrics   Prometheus metrics for sample cycles

Examples:
  peek serve
  peek serve --listen :9666`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(serveListenFlag)
	},
}

// initCmd creates a new .peek.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .peek.yaml configuration",
	Long: `Initialize a new peek configuration file in the current directory with
example sensors to edit.

Examples:
  peek init
  peek init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for peek.

Examples:
  # Bash
  peek completion bash > /etc/bash_completion.d/peek

  # Zsh
  peek completion zsh > "${fpath[1]}/_peek"

  # Fish
  peek completion fish > ~/.config/fish/completions/peek.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// sample command flags
	sampleCmd.Flags().StringVar(&sampleFormatFlag, "format", "", "override the configured format string")
	sampleCmd.Flags().BoolVar(&sampleJSONFlag, "json", false, "print the full sample result as JSON")

	// watch command flags
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "1s", "refresh interval (e.g., 500ms, 1s)")

	// serve command flags
	serveCmd.Flags().StringVar(&serveListenFlag, "listen", "", "listen address (overrides config)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
