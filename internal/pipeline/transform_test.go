package pipeline

import (
	"errors"
	"testing"

	"county-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDeriveStateCounty(t *testing.T) {
	table := loadString(t, countyCSV)

	require.NoError(t, DeriveStateCounty(table, zap.NewNop()))

	col, ok := table.Column(ColStateCounty)
	require.True(t, ok)
	assert.Equal(t, model.KindText, col.Kind)

	st := column(t, table, ColStateName)
	cty := column(t, table, ColCountyName)
	for r, key := range column(t, table, ColStateCounty) {
		assert.Equal(t, st[r]+"_"+cty[r], key)
	}
}

func TestDeriveStateCounty_OverwritesInputColumn(t *testing.T) {
	table := loadString(t, "STNAME,CTYNAME,State_County\nOhio,Butler,stale\n")

	require.NoError(t, DeriveStateCounty(table, zap.NewNop()))

	assert.Len(t, table.Columns, 3)
	assert.Equal(t, []string{"Ohio_Butler"}, column(t, table, ColStateCounty))
}

func TestDeriveStateCounty_MissingColumns(t *testing.T) {
	table := loadString(t, "STATE,COUNTY\n1,2\n")

	err := DeriveStateCounty(table, zap.NewNop())
	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{ColStateName, ColCountyName}, mc.Columns)
	assert.Equal(t, "derive", mc.Stage)
}

func TestDeriveStateCounty_DegenerateKeyIsFlagged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	table := loadString(t, "STNAME,CTYNAME\n,Butler\nOhio,Butler\n")

	require.NoError(t, DeriveStateCounty(table, zap.New(core)))

	assert.Equal(t, []string{"_Butler", "Ohio_Butler"}, column(t, table, ColStateCounty))
	warnings := logs.FilterMessage("state or county name missing, key is degenerate").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(1), warnings[0].ContextMap()["row"])
}
