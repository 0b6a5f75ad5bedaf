package model

import "time"

// RunSpec defines a single invocation of the aggregation pipeline
type RunSpec struct {
	InputPath  string `json:"inputPath"`
	LedgerPath string `json:"ledgerPath,omitempty"` // optional sqlite run ledger
	Verbose    bool   `json:"verbose"`
}

// StageProgress records the timing of one pipeline stage
type StageProgress struct {
	Stage     string     `json:"stage"`
	Status    string     `json:"status"` // "started", "completed", "failed"
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Records   int        `json:"records"`
}

// RunRecord is the ledger view of a finished or running invocation
type RunRecord struct {
	ID         string    `json:"id"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
	Status     string    `json:"status"`
	Original   Shape     `json:"original"`
	Result     Shape     `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
