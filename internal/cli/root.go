// Package cli implements the peek command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small workflow function for the actual work. Sensor
// mechanics live in the other internal packages; cli only wires config,
// sensors, and output together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the --config flag value, empty for the default search order.
var cfgFile string

// rootCmd is the base "peek" command.
var rootCmd = &cobra.Command{
	Use:   "peek",
	Short: "Sample commands and services as status-panel sensors",
	Long: `peek samples external commands and systemd units on a rate gate and
renders their state through placeholder tokens, the way a status panel
widget would consume them.

Examples:
  peek init                 create a starter .peek.yaml
  peek sample disk          sample the 'disk' sensor once
  peek watch                live table of all configured sensors
  peek serve                expose sensors and Prometheus metrics over HTTP`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .peek.yaml search order)")
}
