package utils

import (
	"county-pipeline/internal/model"
	"math"
	"strconv"
	"strings"
)

// missingTokens are the cell spellings read as "no value"
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"NULL": {},
	"null": {},
	"None": {},
	"<NA>": {},
	"#N/A": {},
}

// IsMissing reports whether a raw cell holds no value
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseValue classifies a single non-missing cell
func ParseValue(s string) model.ColumnKind {
	s = strings.TrimSpace(s)

	// try int
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return model.KindInteger
	}
	// try decimal, then float
	if _, ok := parseNumber(s); ok {
		return model.KindFloat
	}
	return model.KindText
}

// DetectKind infers the kind of a whole column from all of its cells.
// A column without a single value is numeric.
func DetectKind(values []string) model.ColumnKind {
	var hasInts, hasFloats, hasMissing bool
	for _, v := range values {
		if IsMissing(v) {
			hasMissing = true
			continue
		}
		switch ParseValue(v) {
		case model.KindInteger:
			hasInts = true
		case model.KindFloat:
			hasFloats = true
		default:
			return model.KindText
		}
	}

	switch {
	case hasFloats:
		return model.KindFloat
	case hasInts && hasMissing:
		// integers cannot hold a missing value
		return model.KindFloat
	case hasInts:
		return model.KindInteger
	default:
		// nothing but missing values, or no rows at all
		return model.KindFloat
	}
}

// Numeric parses a cell of a numeric column. Missing cells are reported with ok=false.
func Numeric(s string) (n Number, ok bool) {
	if IsMissing(s) {
		return Number{}, false
	}
	return parseNumber(strings.TrimSpace(s))
}

// FormatNumber renders a numeric value the way a column of the given kind is written
func FormatNumber(n Number, kind model.ColumnKind) string {
	if n.inexact {
		return formatFloat(n.flt)
	}
	s := n.dec.String()
	if kind == model.KindFloat && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Canonical normalises a cell so that equal values of a column share one spelling
func Canonical(s string, kind model.ColumnKind) string {
	if IsMissing(s) {
		return ""
	}
	if !kind.Numeric() {
		return s
	}
	n, ok := Numeric(s)
	if !ok {
		return s
	}
	return FormatNumber(n, kind)
}
