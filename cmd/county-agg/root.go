package main

import (
	"context"
	"county-pipeline/internal/model"
	"county-pipeline/internal/pipeline"
	"county-pipeline/internal/store"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = "Usage: county-agg <input_file>"

// newLogger builds the stderr logger, Warn by default and Debug when verbose
var newLogger = func(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// Execute runs the CLI with the given arguments and returns the exit status
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var usageErr *pipeline.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(stdout, usageErr.Usage)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app is the state shared by the commands of one invocation
type app struct {
	spec   model.RunSpec
	logger *zap.Logger
	stdout io.Writer
}

// syncLogger flushes buffered log entries. Commands defer it so it also
// runs when they fail.
func (a *app) syncLogger() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	rootCmd := &cobra.Command{
		Use:   "county-agg <input_file>",
		Short: "Combine age-group rows of a county population CSV",
		Long: `county-agg reads a county-level population estimates CSV, derives the
State_County key and sums every numeric measure over the age-group rows of
each geography and year. AGEGRP of the combined rows is "5+6+7".

The result is written next to the input as
<input>_processed_<random>.csv.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &pipeline.UsageError{Usage: usage}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.spec.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.syncLogger()
			a.spec.InputPath = args[0]
			return runPipeline(cmd.Context(), a.spec, a.logger, a.stdout)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&a.spec.Verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&a.spec.LedgerPath, "ledger", "", "record the run in this sqlite database")

	rootCmd.AddCommand(newRunsCmd(a))

	return rootCmd
}

func runPipeline(ctx context.Context, spec model.RunSpec, logger *zap.Logger, stdout io.Writer) error {
	deps := pipeline.Deps{Logger: logger, Stdout: stdout}
	if spec.LedgerPath != "" {
		ledger, err := store.Open(spec.LedgerPath)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer ledger.Close()
		deps.Ledger = ledger
	}

	_, err := pipeline.Run(ctx, spec, deps)
	return err
}
