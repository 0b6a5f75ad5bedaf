package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"county-pipeline/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const sampleCSV = `SUMLEV,STATE,COUNTY,STNAME,CTYNAME,YEAR,AGEGRP,TOT_POP,TOT_MALE,TOT_FEMALE
50,39,17,Ohio,Butler,2020,5,100,50,50
50,39,17,Ohio,Butler,2020,6,50,25,25
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func processedFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*_processed_*.csv"))
	require.NoError(t, err)
	return matches
}

func TestExecute_UsageErrors(t *testing.T) {
	for _, args := range [][]string{{}, {"a.csv", "b.csv"}} {
		var stdout, stderr bytes.Buffer

		code := Execute(args, &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Equal(t, usage+"\n", stdout.String())
		assert.Empty(t, stderr.String())
	}
}

func TestExecute_Success(t *testing.T) {
	input := writeSample(t)
	var stdout, stderr bytes.Buffer

	code := Execute([]string{input}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Processing complete:")
	assert.Contains(t, stdout.String(), "New shape: (1, 11)")

	files := processedFiles(t, filepath.Dir(input))
	require.Len(t, files, 1)
	assert.Regexp(t, `counties_processed_[0-9a-f]{6}\.csv$`, files[0])

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "50,39,17,Ohio,Ohio_Butler,Butler,2020,5+6+7,150,75,75\n")
}

func TestExecute_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := Execute([]string{filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: file not found")
	assert.Empty(t, stdout.String())
}

func TestExecute_Ledger(t *testing.T) {
	input := writeSample(t)
	ledgerPath := filepath.Join(t.TempDir(), "runs.db")
	var stdout, stderr bytes.Buffer

	code := Execute([]string{"--ledger", ledgerPath, input}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	s, err := store.Open(ledgerPath)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "completed", runs[0].Status)
	assert.Equal(t, input, runs[0].InputPath)
	assert.Equal(t, processedFiles(t, filepath.Dir(input))[0], runs[0].OutputPath)
}

// syncCounter counts Sync calls reaching the core
type syncCounter struct {
	zapcore.Core
	syncs *int
}

func (c syncCounter) Sync() error {
	*c.syncs++
	return nil
}

func countSyncs(t *testing.T) *int {
	t.Helper()
	syncs := new(int)
	orig := newLogger
	newLogger = func(bool) (*zap.Logger, error) {
		return zap.New(syncCounter{Core: zapcore.NewNopCore(), syncs: syncs}), nil
	}
	t.Cleanup(func() { newLogger = orig })
	return syncs
}

func TestExecute_SyncsLoggerOnFailure(t *testing.T) {
	syncs := countSyncs(t)
	var stdout, stderr bytes.Buffer

	code := Execute([]string{filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, *syncs)
}

func TestExecute_SyncsLoggerOnSuccess(t *testing.T) {
	syncs := countSyncs(t)
	var stdout, stderr bytes.Buffer

	code := Execute([]string{writeSample(t)}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, 1, *syncs)
}
