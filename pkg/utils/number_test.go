package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"county-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_OutOfRangeExponents(t *testing.T) {
	tests := []struct {
		cell string
		want float64
	}{
		{"1e400", math.Inf(1)},
		{"-1e10000000", math.Inf(-1)},
		{"1e999999999", math.Inf(1)},
		{"1e99999999999", math.Inf(1)},
		{"1e-400", 0},
		{"5e-999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			n, ok := Numeric(tt.cell)
			require.True(t, ok)
			assert.False(t, n.Exact())
			assert.Equal(t, tt.want, n.Float64())
		})
	}
}

func TestNumeric_ExactWithinRange(t *testing.T) {
	for _, cell := range []string{"1e300", "-2.5e-300", "123456789012345678901234567890"} {
		n, ok := Numeric(cell)
		require.True(t, ok, cell)
		assert.True(t, n.Exact(), cell)
	}
}

func TestFormatNumber_HugeExponentStaysShort(t *testing.T) {
	start := time.Now()
	out := FormatNumber(mustNumeric(t, "1e999999999"), model.KindFloat)
	assert.Equal(t, "inf", out)
	assert.Less(t, time.Since(start), time.Second)

	assert.Equal(t, "-inf", FormatNumber(mustNumeric(t, "-1e400"), model.KindFloat))
	assert.Equal(t, "0.0", FormatNumber(mustNumeric(t, "1e-400"), model.KindFloat))
	assert.Equal(t, "1"+strings.Repeat("0", 300)+".0", FormatNumber(mustNumeric(t, "1e300"), model.KindFloat))
}

func TestNumber_AddFallsBackToFloat(t *testing.T) {
	sum := mustNumeric(t, "2.5").Add(mustNumeric(t, "1e-400"))
	assert.False(t, sum.Exact())
	assert.Equal(t, "2.5", FormatNumber(sum, model.KindFloat))

	sum = mustNumeric(t, "1e400").Add(mustNumeric(t, "-1e400"))
	assert.Equal(t, "", FormatNumber(sum, model.KindFloat))

	assert.Equal(t, "inf", FormatNumber(mustNumeric(t, "inf").Add(mustNumeric(t, "1")), model.KindFloat))
}

func TestNumber_Cmp(t *testing.T) {
	assert.Equal(t, -1, mustNumeric(t, "1").Cmp(mustNumeric(t, "2")))
	assert.Equal(t, 1, mustNumeric(t, "1e400").Cmp(mustNumeric(t, "1e300")))
	assert.Equal(t, 0, mustNumeric(t, "1e400").Cmp(mustNumeric(t, "inf")))
	assert.Equal(t, -1, mustNumeric(t, "1e-400").Cmp(mustNumeric(t, "1")))
}

func TestNumeric_ZeroDropsExponent(t *testing.T) {
	for _, cell := range []string{"0e-999999999", "0e999999999", "-0.000"} {
		n := mustNumeric(t, cell)
		assert.True(t, n.Exact(), cell)
		assert.Equal(t, "0.0", FormatNumber(n, model.KindFloat), cell)
		assert.Equal(t, "1.5", FormatNumber(n.Add(mustNumeric(t, "1.5")), model.KindFloat), cell)
	}
}

func TestCanonical_OutOfRange(t *testing.T) {
	assert.Equal(t, "inf", Canonical("1e999999999", model.KindFloat))
	assert.Equal(t, "inf", Canonical("inf", model.KindFloat))
}
