package dto

import "main/model"

// StatsResponse bundles everything the dashboard needs in one payload.
type StatsResponse struct {
	Stats     model.ActivityStats        `json:"stats"`
	Breakdown map[model.Category]float64 `json:"category_breakdown"`
	Monthly   []model.MonthlyPoint       `json:"monthly_series"`
}
