package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chabad360/oscbridge/internal/config"
	"github.com/chabad360/oscbridge/internal/logging"
)

var (
	cfgFile  string
	envFiles []string
	logLevel string

	// cfg is resolved before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "oscbridge",
	Short: "OSC over UDP into a host event loop",
	Long: `oscbridge binds one or more OSC receivers and publishes every decoded
message, bundles flattened, into a fixed-rate host loop.

Receivers run either cooperatively (one receive in flight, polled once per
cycle) or threaded (a reader goroutine per socket feeding a shared inbox).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.ConfigureRuntime()
		if logLevel != "" && !logging.SetLevel(logLevel) {
			return fmt.Errorf("unknown log level %q", logLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile, envFiles...)
		return err
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")

	rootCmd.AddCommand(listenCmd, sendCmd, consoleCmd)
}
