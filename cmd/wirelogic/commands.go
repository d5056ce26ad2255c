package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/wirelogic/config"
	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/verify"
)

func newParseCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Parse a circuit and print its instructions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("error-policy") {
				cfg.ErrorPolicy = policy
			}

			prog, err := loadCircuit(cfg, args)
			if len(prog.Instructions) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), core.RenderProgram(prog))
			}

			return err
		},
	}

	cmd.Flags().StringVar(&policy, "error-policy", "stop", "stop or collect")

	return cmd
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [FILE]",
		Short: "Report undriven, multiply driven and cyclic wires",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			prog, err := loadCircuit(cfg, args)
			if err != nil {
				return err
			}

			issues := verify.RunLint(prog)
			if len(issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lint issues found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), verify.RenderIssues(issues))
			exitCode = 2

			return nil
		},
	}
}

type runFlags struct {
	wires     []string
	overrides []string
	engine    string
	workers   int
	policy    string
	report    bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Evaluate a circuit and print wire values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}

			prog, err := loadCircuit(cfg, args)
			if err != nil {
				return err
			}

			if f.report {
				report := verify.GenerateReport(prog, verify.ReportOptions{
					Wires:     cfg.WireList(),
					Overrides: cfg.OverrideMap(),
				})
				report.WriteReport(cmd.OutOrStdout())
				if !report.SimulationOK {
					exitCode = 1
				}
				return nil
			}

			values, err := config.Evaluate(cfg, prog)
			if len(values) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), core.RenderValues(values))
			}

			return err
		},
	}

	cmd.Flags().StringSliceVarP(&f.wires, "wire", "w", nil, "wire to print; repeatable")
	cmd.Flags().StringArrayVarP(&f.overrides, "override", "o", nil, "pin a wire, as wire=value; repeatable")
	cmd.Flags().StringVar(&f.engine, "engine", config.EngineFunc, "func or cycle")
	cmd.Flags().IntVar(&f.workers, "workers", 1, "parser goroutines")
	cmd.Flags().StringVar(&f.policy, "error-policy", "stop", "stop or collect")
	cmd.Flags().BoolVar(&f.report, "report", false, "print a lint and simulation report")

	return cmd
}

// apply lays the flags the user set over the configuration.
func (f runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("wire") {
		cfg.Wires = f.wires
	}

	if flags.Changed("engine") {
		cfg.Engine = f.engine
	}

	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}

	if flags.Changed("error-policy") {
		cfg.ErrorPolicy = f.policy
	}

	for _, o := range f.overrides {
		if err := cfg.SetOverride(o); err != nil {
			return err
		}
	}

	return cfg.Validate()
}
