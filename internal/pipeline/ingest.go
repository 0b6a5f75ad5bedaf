package pipeline

import (
	"county-pipeline/internal/model"
	"county-pipeline/pkg/utils"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// LoadCSV reads the whole CSV file at path into memory and infers the kind
// of every column. The returned shape is the table as loaded.
func LoadCSV(path string) (*model.Table, model.Shape, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.Shape{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, model.Shape{}, fmt.Errorf("%w: failed to open CSV file: %v", ErrIO, err)
	}
	defer file.Close()

	t, err := ReadCSV(path, file)
	if err != nil {
		return nil, model.Shape{}, err
	}
	return t, t.Shape(), nil
}

// ReadCSV parses CSV text with a header row. name is only used in errors.
func ReadCSV(name string, r io.Reader) (*model.Table, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: name, Err: errors.New("no header row")}
	} else if err != nil {
		return nil, asParseError(name, err)
	}

	names := make([]string, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		// Clean header names: trim whitespace and remove ALL quotes
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cleanHeader := strings.TrimSpace(h)
		cleanHeader = strings.ReplaceAll(cleanHeader, `"`, "")
		if seen[cleanHeader] {
			return nil, &ParseError{Path: name, Line: 1, Err: fmt.Errorf("duplicate column %q", cleanHeader)}
		}
		seen[cleanHeader] = true
		names[i] = cleanHeader
	}

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, asParseError(name, err)
		}
		rows = append(rows, record)
	}

	columns := make([]model.Column, len(names))
	values := make([]string, len(rows))
	for i, n := range names {
		for r, row := range rows {
			values[r] = row[i]
		}
		columns[i] = model.Column{Name: n, Kind: utils.DetectKind(values)}
	}

	t := model.NewTable(columns)
	t.Rows = rows
	return t, nil
}

func asParseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("%w: CSV read error: %v", ErrIO, err)
}
