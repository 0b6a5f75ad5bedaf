package pipeline

import (
	"county-pipeline/internal/model"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// sampleRows is the number of aggregated rows shown in the summary
const sampleRows = 2

// CheckReportColumns fails when the summary sample cannot be built
func CheckReportColumns(t *model.Table) error {
	_, missing := t.Select(ReportColumns())
	if len(missing) > 0 {
		return &MissingColumnError{Stage: "report", Columns: missing}
	}
	return nil
}

// PrintSummary writes the console report of a finished run
func PrintSummary(w io.Writer, result *model.Table, original model.Shape, outputPath string) error {
	sample, missing := result.Head(sampleRows).Select(ReportColumns())
	if len(missing) > 0 {
		return &MissingColumnError{Stage: "report", Columns: missing}
	}

	rendered, err := renderSample(sample)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nProcessing complete:\n")
	fmt.Fprintf(w, "Original shape: %s\n", original)
	fmt.Fprintf(w, "New shape: %s\n", result.Shape())
	fmt.Fprintf(w, "\nSample of processed data (first %d rows):\n", sampleRows)
	fmt.Fprintln(w, rendered)
	fmt.Fprintf(w, "\nOutput saved to: %s\n", outputPath)
	return nil
}

func renderSample(sample *model.Table) (string, error) {
	if len(sample.Rows) == 0 {
		return fmt.Sprintf("Empty DataFrame\nColumns: [%s]\nIndex: []", strings.Join(sample.Names(), ", ")), nil
	}

	records := make([][]string, 0, len(sample.Rows)+1)
	records = append(records, sample.Names())
	records = append(records, sample.Rows...)

	df := dataframe.LoadRecords(records, dataframe.DetectTypes(false))
	if df.Err != nil {
		return "", fmt.Errorf("failed to render sample: %w", df.Err)
	}
	return strings.TrimRight(df.String(), "\n"), nil
}
