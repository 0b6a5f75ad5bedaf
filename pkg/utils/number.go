package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal exponents outside float64's range. A value whose leading digit
// falls outside them is held as a float64 instead of an exact decimal, so a
// short cell such as "1e999999999" never expands into its digits.
const (
	maxExactExponent = 308
	minExactExponent = -324
)

// Number is a parsed numeric cell. It is an exact decimal unless its
// magnitude lies outside float64's range, in which case it is a float64
// that may be infinite or zero. Sums involving such a value are float64 too.
type Number struct {
	dec     decimal.Decimal
	flt     float64
	inexact bool
}

// Exact reports whether n carries an exact decimal value
func (n Number) Exact() bool {
	return !n.inexact
}

// Float64 returns n as a float64
func (n Number) Float64() float64 {
	if n.inexact {
		return n.flt
	}
	return n.dec.InexactFloat64()
}

// Add returns n + m
func (n Number) Add(m Number) Number {
	if n.inexact || m.inexact {
		return Number{flt: n.Float64() + m.Float64(), inexact: true}
	}
	return Number{dec: n.dec.Add(m.dec)}
}

// Cmp returns -1, 0 or +1 as n is less than, equal to or greater than m
func (n Number) Cmp(m Number) int {
	if !n.inexact && !m.inexact {
		return n.dec.Cmp(m.dec)
	}
	a, b := n.Float64(), m.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func parseNumber(s string) (Number, bool) {
	if d, err := decimal.NewFromString(s); err == nil {
		if d.IsZero() {
			// a zero keeps no exponent, "0e-999999999" included
			return Number{dec: decimal.Zero}, true
		}
		if exactRange(d) {
			return Number{dec: d}, true
		}
	}
	f, ok := parseFloat(s)
	if !ok {
		return Number{}, false
	}
	return Number{flt: f, inexact: true}, true
}

func exactRange(d decimal.Decimal) bool {
	lead := int64(d.Exponent()) + int64(d.NumDigits()) - 1
	return lead >= minExactExponent && lead <= maxExactExponent
}

// parseFloat accepts decimal notation, including out-of-range exponents that
// round to infinity or zero, and the inf spellings. Hex floats, underscores
// and nan are not numbers here.
func parseFloat(s string) (float64, bool) {
	body := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") ||
		strings.Contains(body, "_") || strings.EqualFold(body, "nan") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
	}
	return f, true
}
