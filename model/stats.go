package model

// ActivityStats summarizes a user's activity set.
type ActivityStats struct {
	TotalCount     int     `json:"total_count"`
	TotalScore     float64 `json:"total_score"`
	CountThisMonth int     `json:"count_this_month"`
}

// MonthlyPoint is one entry of the monthly chart series.
type MonthlyPoint struct {
	MonthKey      string  `json:"month_key"`
	ActivityCount int     `json:"activity_count"`
	TotalScore    float64 `json:"total_score"`
}
