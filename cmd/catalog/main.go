package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/catalog/internal/config"
	_ "github.com/GriffinCanCode/catalog/internal/converter"
	"github.com/GriffinCanCode/catalog/internal/engine"
)

var (
	devMode  bool
	logLevel string
)

// app holds the engine built for the running command
var app *engine.Engine

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Inspect and drive the runtime type catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return startEngine()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			stopEngine()
		},
	}

	root.PersistentFlags().BoolVar(&devMode, "dev", false, "Development logging (colored, debug level)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newExecCmd(),
		newConsoleCmd(),
		newRunCmd(),
	)
	return root
}

func startEngine() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if devMode {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	app, err = engine.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	app.Start()
	return nil
}

func stopEngine() {
	if app != nil {
		app.Shutdown()
		app = nil
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		stopEngine()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
