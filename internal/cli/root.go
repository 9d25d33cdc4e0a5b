// Package cli wires configuration, storage and the HTTP API into the
// boxfleet command.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prudhvinik1/boxfleet/internal/logs"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogFormat string
	EnvFile   string
}

var ValidLogFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "boxfleet",
		Short: "Sensor box fleet backend",
		Long:  "Registers sensor boxes, reconciles their sensor lists and serves them over HTTP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogFormat != "" && !slices.Contains(ValidLogFormats, opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			// A missing env file is fine; the process environment still applies.
			if err := godotenv.Load(opts.EnvFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json), overrides LOG_FORMAT")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (o *RootOptions) logger(cmd *cobra.Command, level, format string) *logrus.Logger {
	if o.LogLevel != "" {
		level = o.LogLevel
	}
	if o.LogFormat != "" {
		format = o.LogFormat
	}
	return logs.New(logs.Options{Level: level, Format: format, Output: cmd.ErrOrStderr()})
}
