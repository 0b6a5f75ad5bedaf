package pipeline

import (
	"county-pipeline/internal/model"
	"county-pipeline/pkg/utils"
	"sort"
	"strconv"
	"strings"
)

// ageGroup is one output row under construction
type ageGroup struct {
	ids  []string // canonical identifier values, in idCols order
	sums []utils.Number
}

// AggregateAgeGroups collapses every set of rows sharing the identifier tuple
// into one row. Summable columns are summed, AGEGRP becomes "5+6+7" and the
// result holds FinalColumns followed by sumCols, ordered by identifier tuple.
func AggregateAgeGroups(t *model.Table, idCols, sumCols []string) (*model.Table, error) {
	if err := checkGroupedColumns(t, idCols, sumCols); err != nil {
		return nil, err
	}

	idIdx := make([]int, len(idCols))
	idKinds := make([]model.ColumnKind, len(idCols))
	for i, c := range idCols {
		idIdx[i] = t.ColumnIndex(c)
		idKinds[i] = t.Columns[idIdx[i]].Kind
	}
	sumIdx := make([]int, len(sumCols))
	for i, c := range sumCols {
		sumIdx[i] = t.ColumnIndex(c)
	}

	groups := make(map[string]*ageGroup)
	var order []*ageGroup
	for _, row := range t.Rows {
		ids := make([]string, len(idIdx))
		var key strings.Builder
		for i, ci := range idIdx {
			ids[i] = utils.Canonical(row[ci], idKinds[i])
			key.WriteString(strconv.Quote(ids[i]))
		}

		g, exists := groups[key.String()]
		if !exists {
			g = &ageGroup{ids: ids, sums: make([]utils.Number, len(sumIdx))}
			groups[key.String()] = g
			order = append(order, g)
		}
		for i, ci := range sumIdx {
			if num, ok := utils.Numeric(row[ci]); ok {
				g.sums[i] = g.sums[i].Add(num)
			}
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return lessIdentifiers(order[a].ids, order[b].ids, idKinds)
	})

	return buildGroupedTable(t, order, idCols, sumCols)
}

func checkGroupedColumns(t *model.Table, idCols, sumCols []string) error {
	var missing []string
	seen := make(map[string]bool)
	report := func(c string) {
		if !seen[c] {
			seen[c] = true
			missing = append(missing, c)
		}
	}

	grouped := make(map[string]bool, len(idCols)+len(sumCols)+1)
	for _, c := range idCols {
		if !t.Has(c) {
			report(c)
		}
		grouped[c] = true
	}
	for _, c := range sumCols {
		if !t.Has(c) {
			report(c)
		}
		grouped[c] = true
	}
	if !t.Has(ColAgeGroup) {
		report(ColAgeGroup)
	}
	grouped[ColAgeGroup] = true

	for _, c := range FinalColumns() {
		if !grouped[c] || !t.Has(c) {
			report(c)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnError{Stage: "aggregate", Columns: missing}
	}
	return nil
}

func buildGroupedTable(t *model.Table, groups []*ageGroup, idCols, sumCols []string) (*model.Table, error) {
	idPos := make(map[string]int, len(idCols))
	for i, c := range idCols {
		idPos[c] = i
	}
	sumPos := make(map[string]int, len(sumCols))
	for i, c := range sumCols {
		sumPos[c] = i
	}

	names := FinalColumns()
	for _, c := range sumCols {
		if _, isID := idPos[c]; isID || c == ColAgeGroup {
			continue
		}
		names = append(names, c)
	}

	columns := make([]model.Column, len(names))
	for i, n := range names {
		if n == ColAgeGroup {
			columns[i] = model.Column{Name: n, Kind: model.KindText}
			continue
		}
		col, _ := t.Column(n)
		columns[i] = col
	}

	out := model.NewTable(columns)
	out.Rows = make([][]string, len(groups))
	for r, g := range groups {
		row := make([]string, len(columns))
		for i, col := range columns {
			switch {
			case col.Name == ColAgeGroup:
				row[i] = CombinedAgeGroups
			case hasKey(idPos, col.Name):
				row[i] = g.ids[idPos[col.Name]]
			default:
				row[i] = utils.FormatNumber(g.sums[sumPos[col.Name]], col.Kind)
			}
		}
		out.Rows[r] = row
	}
	return out, nil
}

func hasKey(m map[string]int, k string) bool {
	_, ok := m[k]
	return ok
}

// lessIdentifiers orders identifier tuples column by column. Numeric columns
// compare by value and missing values sort last.
func lessIdentifiers(a, b []string, kinds []model.ColumnKind) bool {
	for i := range a {
		if c := compareCell(a[i], b[i], kinds[i]); c != 0 {
			return c < 0
		}
	}
	return false
}

func compareCell(a, b string, kind model.ColumnKind) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	if kind.Numeric() {
		na, okA := utils.Numeric(a)
		nb, okB := utils.Numeric(b)
		if okA && okB {
			return na.Cmp(nb)
		}
	}
	return strings.Compare(a, b)
}
