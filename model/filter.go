package model

// FilterSpec is the ephemeral, client-held search/filter state. It is bound
// from query parameters and never persisted. Nil bounds are "no bound".
type FilterSpec struct {
	Search   string   `form:"q"`
	Category string   `form:"category"`
	DateFrom string   `form:"date_from"` // inclusive, YYYY-MM-DD
	DateTo   string   `form:"date_to"`   // inclusive, YYYY-MM-DD
	ScoreMin *float64 `form:"score_min"`
	ScoreMax *float64 `form:"score_max"`
	HoursMin *float64 `form:"hours_min"`
	HoursMax *float64 `form:"hours_max"`
}

// IsEmpty reports whether no filter rule is set at all.
func (f FilterSpec) IsEmpty() bool {
	return f.Search == "" && f.Category == "" &&
		f.DateFrom == "" && f.DateTo == "" &&
		f.ScoreMin == nil && f.ScoreMax == nil &&
		f.HoursMin == nil && f.HoursMax == nil
}
