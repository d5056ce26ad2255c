// Command wirelogic parses, checks and evaluates circuit descriptions.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/wirelogic/config"
	"github.com/sarchlab/wirelogic/core"
)

var (
	configPath string
	logLevel   string
	exitCode   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode = 1
	}

	atexit.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wirelogic",
		Short:        "Parse, lint and evaluate wire circuits",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setupLogging()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newParseCmd(),
		newLintCmd(),
		newRunCmd(),
		newReplCmd(),
	)

	return root
}

func setupLogging() error {
	level := logLevel
	if level == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level = cfg.LogLevel
	}

	lvl, err := core.ParseLogLevel(level)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))

	return nil
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	return config.Load(configPath)
}

// inputPath picks the circuit file from the arguments, falling back to the
// configuration.
func inputPath(cfg config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if cfg.Input == "" {
		return "", fmt.Errorf("no circuit file given")
	}

	return cfg.Input, nil
}

func loadCircuit(cfg config.Config, args []string) (core.Program, error) {
	path, err := inputPath(cfg, args)
	if err != nil {
		return core.Program{}, err
	}

	return core.LoadProgramFile(path, cfg.Policy(), cfg.Workers)
}
