package pipeline

import "county-pipeline/internal/model"

// SummableColumns lists, in table order, the numeric columns that are neither
// identifiers nor AGEGRP.
func SummableColumns(t *model.Table, idCols []string) []string {
	skip := make(map[string]bool, len(idCols)+1)
	for _, c := range idCols {
		skip[c] = true
	}
	skip[ColAgeGroup] = true

	var cols []string
	for _, c := range t.Columns {
		if skip[c.Name] || !c.Kind.Numeric() {
			continue
		}
		cols = append(cols, c.Name)
	}
	return cols
}
