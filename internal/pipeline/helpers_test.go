package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"county-pipeline/internal/model"

	"github.com/stretchr/testify/require"
)

const countyCSV = `SUMLEV,STATE,COUNTY,STNAME,CTYNAME,YEAR,AGEGRP,TOT_POP,TOT_MALE,TOT_FEMALE,WA_MALE
050,39,017,Ohio,Butler,2020,5,100,60,40,1.5
050,39,017,Ohio,Butler,2020,6,50,20,30,2.25
050,39,017,Ohio,Butler,2021,5,10,4,6,0.1
050,39,017,Ohio,Butler,2021,7,20,9,11,0.2
050,01,001,Alabama,Autauga County,2020,5,7,3,4,1
`

// writeInput writes content to a CSV file inside a fresh temp dir
func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// loadString parses CSV text into a table
func loadString(t *testing.T, content string) *model.Table {
	t.Helper()
	table, err := ReadCSV("test.csv", strings.NewReader(content))
	require.NoError(t, err)
	return table
}

// column returns every value of the named column
func column(t *testing.T, table *model.Table, name string) []string {
	t.Helper()
	i := table.ColumnIndex(name)
	require.GreaterOrEqual(t, i, 0, "column %s", name)
	values := make([]string, len(table.Rows))
	for r, row := range table.Rows {
		values[r] = row[i]
	}
	return values
}

type fixedSuffix string

func (f fixedSuffix) Suffix() (string, error) { return string(f), nil }
