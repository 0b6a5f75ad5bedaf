package pipeline

import (
	"county-pipeline/internal/model"
	"county-pipeline/pkg/utils"

	"go.uber.org/zap"
)

// DeriveStateCounty adds the State_County column as STNAME + "_" + CTYNAME,
// replacing any State_County column read from the input.
//
// Missing names are joined as they were read and only reported; the
// degenerate key they produce is kept.
func DeriveStateCounty(t *model.Table, logger *zap.Logger) error {
	stIdx := t.ColumnIndex(ColStateName)
	ctyIdx := t.ColumnIndex(ColCountyName)

	var missing []string
	if stIdx < 0 {
		missing = append(missing, ColStateName)
	}
	if ctyIdx < 0 {
		missing = append(missing, ColCountyName)
	}
	if len(missing) > 0 {
		return &MissingColumnError{Stage: "derive", Columns: missing}
	}

	values := make([]string, len(t.Rows))
	degenerate := 0
	for r, row := range t.Rows {
		st, cty := row[stIdx], row[ctyIdx]
		if utils.IsMissing(st) || utils.IsMissing(cty) {
			degenerate++
			logger.Warn("state or county name missing, key is degenerate",
				zap.Int("row", r+1),
				zap.String("stname", st),
				zap.String("ctyname", cty),
			)
		}
		values[r] = st + "_" + cty
	}
	if degenerate > 0 {
		logger.Warn("degenerate State_County keys", zap.Int("count", degenerate))
	}

	return t.SetColumn(model.Column{Name: ColStateCounty, Kind: model.KindText}, values)
}
