package pipeline

import (
	"county-pipeline/internal/model"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the table with a header row to path, replacing any existing
// file. It returns the number of data rows written.
func WriteCSV(path string, t *model.Table) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create file: %v", ErrIO, err)
	}

	recordCount, err := EncodeCSV(file, t)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: failed to close file: %v", ErrIO, cerr)
	}
	return recordCount, err
}

// EncodeCSV serializes the table to w
func EncodeCSV(w io.Writer, t *model.Table) (int, error) {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Names()); err != nil {
		return 0, fmt.Errorf("%w: failed to write header: %v", ErrIO, err)
	}

	recordCount := 0
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return recordCount, fmt.Errorf("%w: failed to write row: %v", ErrIO, err)
		}
		recordCount++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return recordCount, fmt.Errorf("%w: failed to flush CSV: %v", ErrIO, err)
	}
	return recordCount, nil
}
