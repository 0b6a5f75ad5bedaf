package main

import (
	"county-pipeline/internal/model"
	"county-pipeline/internal/store"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoLedger = errors.New("runs needs --ledger <path>")

func newRunsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List the runs recorded in a ledger, or show one of them",
		Long: `runs reads the sqlite ledger given by --ledger. Without an argument it
lists every recorded run, newest first. With a run ID it shows that run with
its stage events and errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.syncLogger()
			if a.spec.LedgerPath == "" {
				return errNoLedger
			}

			ledger, err := store.Open(a.spec.LedgerPath)
			if err != nil {
				return fmt.Errorf("failed to open ledger: %w", err)
			}
			defer ledger.Close()

			if len(args) == 0 {
				a.logger.Debug("listing runs", zap.String("ledger", a.spec.LedgerPath))
				return listRuns(a.stdout, ledger)
			}
			a.logger.Debug("showing run", zap.String("ledger", a.spec.LedgerPath), zap.String("run_id", args[0]))
			return showRun(a.stdout, ledger, args[0])
		},
	}
}

func listRuns(w io.Writer, ledger *store.Store) error {
	runs, err := ledger.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tINPUT\tOUTPUT\tORIGINAL\tRESULT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID, run.Status, formatTime(run.CreatedAt), run.InputPath, dash(run.OutputPath),
			run.Original, run.Result)
	}
	return tw.Flush()
}

func showRun(w io.Writer, ledger *store.Store, runID string) error {
	run, err := ledger.GetRun(runID)
	if err != nil {
		return err
	}
	stages, err := ledger.RunStages(runID)
	if err != nil {
		return fmt.Errorf("failed to read stages: %w", err)
	}
	runErrors, err := ledger.RunErrors(runID)
	if err != nil {
		return fmt.Errorf("failed to read errors: %w", err)
	}

	fmt.Fprintf(w, "Run: %s\n", run.ID)
	fmt.Fprintf(w, "Status: %s\n", run.Status)
	fmt.Fprintf(w, "Input: %s\n", run.InputPath)
	fmt.Fprintf(w, "Output: %s\n", dash(run.OutputPath))
	fmt.Fprintf(w, "Original shape: %s\n", run.Original)
	fmt.Fprintf(w, "New shape: %s\n", run.Result)
	fmt.Fprintf(w, "Created: %s\n", formatTime(run.CreatedAt))
	fmt.Fprintf(w, "Updated: %s\n", formatTime(run.UpdatedAt))

	fmt.Fprintln(w, "\nStages:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSTATUS\tRECORDS\tSTARTED\tDURATION")
	for _, p := range stages {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.Stage, p.Status, p.Records, formatTime(p.StartTime), duration(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(runErrors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, msg := range runErrors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(time.RFC3339)
}

func duration(p model.StageProgress) string {
	if p.EndTime == nil {
		return "-"
	}
	return p.EndTime.Sub(p.StartTime).String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
