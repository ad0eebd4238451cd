// Package cmd wires the pequod command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/component"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/config"
)

var (
	cfgFile    string
	verbose    bool
	bestEffort bool

	cfg      *config.File
	settings config.Settings
	registry *component.Registry
)

var rootCmd = &cobra.Command{
	Use:   "pequod",
	Short: "Build and push component container images",
	Long:  "Pequod builds container images for the configured components, tags them and pushes them to a registry.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger()
		// Version works without a config file.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		settings, err = config.ParseSettings()
		if err != nil {
			return err
		}
		registry, err = component.Load(cfg)
		if err != nil {
			return fmt.Errorf("loading components: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pequod.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&bestEffort, "best-effort", false, "exit zero even when individual component operations fail")
}

func initLogger() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command. SIGINT/SIGTERM cancel the command
// context, which kills any in-flight external processes.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
