package pipeline

// Column names of the county population estimates layout
const (
	ColSumLev      = "SUMLEV"
	ColState       = "STATE"
	ColCounty      = "COUNTY"
	ColStateName   = "STNAME"
	ColCountyName  = "CTYNAME"
	ColStateCounty = "State_County"
	ColYear        = "YEAR"
	ColAgeGroup    = "AGEGRP"
	ColTotPop      = "TOT_POP"
	ColTotMale     = "TOT_MALE"
	ColTotFemale   = "TOT_FEMALE"
)

// CombinedAgeGroups replaces AGEGRP in every aggregated row
const CombinedAgeGroups = "5+6+7"

// IdentifierColumns define the identity of an output row
func IdentifierColumns() []string {
	return []string{ColSumLev, ColState, ColCounty, ColStateName, ColCountyName, ColStateCounty, ColYear}
}

// FinalColumns is the fixed leading column sequence of the output
func FinalColumns() []string {
	return []string{ColSumLev, ColState, ColCounty, ColStateName, ColStateCounty, ColCountyName, ColYear, ColAgeGroup}
}

// ReportColumns are shown in the console sample
func ReportColumns() []string {
	return []string{ColStateCounty, ColYear, ColAgeGroup, ColTotPop, ColTotMale, ColTotFemale}
}
