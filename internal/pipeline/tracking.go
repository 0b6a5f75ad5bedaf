package pipeline

import (
	"county-pipeline/internal/model"
	"time"

	"go.uber.org/zap"
)

// Ledger persists run progress. A nil Ledger is valid and records nothing.
type Ledger interface {
	SaveRun(runID, inputPath string) error
	UpdateRunStatus(runID, status string) error
	SaveStageProgress(runID string, progress model.StageProgress) error
	SaveRunResult(runID, outputPath string, original, result model.Shape) error
	SaveRunError(runID string, err error) error
}

// StageTracker times pipeline stages and reports them to the logger and ledger
type StageTracker struct {
	RunID  string
	Stages []model.StageProgress

	logger *zap.Logger
	ledger Ledger
}

// NewStageTracker creates a tracker for one run
func NewStageTracker(runID string, logger *zap.Logger, ledger Ledger) *StageTracker {
	return &StageTracker{RunID: runID, logger: logger, ledger: ledger}
}

// Start marks a stage as started and returns the function that ends it.
// records is the number of rows the stage produced.
func (st *StageTracker) Start(stage string) func(records int, err error) {
	startTime := time.Now()
	st.logger.Debug("stage started", zap.String("run_id", st.RunID), zap.String("stage", stage))
	st.save(model.StageProgress{Stage: stage, Status: "started", StartTime: startTime})

	return func(records int, err error) {
		endTime := time.Now()
		progress := model.StageProgress{
			Stage:     stage,
			Status:    "completed",
			StartTime: startTime,
			EndTime:   &endTime,
			Records:   records,
		}
		if err != nil {
			progress.Status = "failed"
		}
		st.Stages = append(st.Stages, progress)
		st.save(progress)

		st.logger.Debug("stage finished",
			zap.String("run_id", st.RunID),
			zap.String("stage", stage),
			zap.String("status", progress.Status),
			zap.Int("records", records),
			zap.Duration("duration", endTime.Sub(startTime)),
		)
	}
}

func (st *StageTracker) save(progress model.StageProgress) {
	if st.ledger == nil {
		return
	}
	if err := st.ledger.SaveStageProgress(st.RunID, progress); err != nil {
		st.logger.Warn("failed to save stage progress", zap.String("stage", progress.Stage), zap.Error(err))
	}
}
