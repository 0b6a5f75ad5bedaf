package pipeline

import (
	"context"
	"county-pipeline/internal/model"
	"county-pipeline/pkg/utils"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps are the collaborators of a run. Zero values fall back to defaults:
// a no-op logger, crypto-random suffixes, os.Stdout and no ledger.
type Deps struct {
	Logger *zap.Logger
	Suffix utils.SuffixSource
	Stdout io.Writer
	Ledger Ledger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Suffix == nil {
		d.Suffix = utils.UUIDSuffix{}
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	return d
}

// RunResult describes a completed run
type RunResult struct {
	RunID       string
	OutputPath  string
	Original    model.Shape
	Result      *model.Table
	SumColumns  []string
	Stages      []model.StageProgress
	RowsWritten int
}

// ------------------- Pipeline Runner -------------------

// Run loads spec.InputPath, aggregates its age groups, writes the processed
// CSV next to the input and prints the summary. The first failure aborts the run.
func Run(ctx context.Context, spec model.RunSpec, deps Deps) (res *RunResult, err error) {
	deps = deps.withDefaults()
	logger := deps.Logger

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("starting run", zap.String("input", spec.InputPath))

	if deps.Ledger != nil {
		if lerr := deps.Ledger.SaveRun(runID, spec.InputPath); lerr != nil {
			logger.Warn("failed to record run", zap.Error(lerr))
		}
	}

	// Defer function to handle status updates on completion/error
	defer func() {
		if deps.Ledger == nil {
			return
		}
		status := "completed"
		if err != nil {
			status = "failed"
			if lerr := deps.Ledger.SaveRunError(runID, err); lerr != nil {
				logger.Warn("failed to record run error", zap.Error(lerr))
			}
		}
		if lerr := deps.Ledger.UpdateRunStatus(runID, status); lerr != nil {
			logger.Warn("failed to update run status", zap.Error(lerr))
		}
	}()

	tracker := NewStageTracker(runID, logger, deps.Ledger)
	res = &RunResult{RunID: runID}

	// --- LOAD ---
	done := tracker.Start("load")
	table, original, err := LoadCSV(spec.InputPath)
	done(original.Rows, err)
	if err != nil {
		return nil, err
	}
	res.Original = original
	logger.Info("loaded input", zap.Int("rows", original.Rows), zap.Int("columns", original.Columns))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- DERIVE ---
	done = tracker.Start("derive")
	err = DeriveStateCounty(table, logger)
	done(len(table.Rows), err)
	if err != nil {
		return nil, err
	}

	// --- CLASSIFY ---
	idCols := IdentifierColumns()
	res.SumColumns = SummableColumns(table, idCols)
	logger.Debug("summable columns", zap.Strings("columns", res.SumColumns))
	if len(res.SumColumns) == 0 {
		logger.Warn("no numeric columns to sum")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- AGGREGATE ---
	done = tracker.Start("aggregate")
	result, err := AggregateAgeGroups(table, idCols, res.SumColumns)
	if err != nil {
		done(0, err)
		return nil, err
	}
	done(len(result.Rows), nil)
	res.Result = result

	// checked before the write so a run that cannot report leaves no output file
	if err := CheckReportColumns(result); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- EXPORT ---
	outputPath, err := utils.OutputPath(spec.InputPath, deps.Suffix)
	if err != nil {
		return nil, err
	}
	res.OutputPath = outputPath

	done = tracker.Start("export")
	res.RowsWritten, err = WriteCSV(outputPath, result)
	done(res.RowsWritten, err)
	if err != nil {
		return nil, err
	}
	logger.Info("wrote output", zap.String("path", outputPath), zap.Int("rows", res.RowsWritten))

	if deps.Ledger != nil {
		if lerr := deps.Ledger.SaveRunResult(runID, outputPath, original, result.Shape()); lerr != nil {
			logger.Warn("failed to record run result", zap.Error(lerr))
		}
	}

	res.Stages = tracker.Stages
	if err := PrintSummary(deps.Stdout, result, original, outputPath); err != nil {
		return nil, err
	}
	return res, nil
}
