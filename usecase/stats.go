package usecase

import (
	"sort"
	"strings"
	"time"

	"main/model"
)

// ComputeStats summarizes the given activities. Missing scores count as
// zero; "this month" is taken relative to now.
func ComputeStats(activities []*model.Activity, now time.Time) model.ActivityStats {
	currentMonth := now.Format("2006-01")

	stats := model.ActivityStats{TotalCount: len(activities)}
	for _, a := range activities {
		stats.TotalScore += a.Score
		if model.MonthKey(a.Date) == currentMonth {
			stats.CountThisMonth++
		}
	}
	return stats
}

// ComputeCategoryBreakdown sums scores per category. Categories with no
// activities do not appear in the result.
func ComputeCategoryBreakdown(activities []*model.Activity) map[model.Category]float64 {
	breakdown := make(map[model.Category]float64)
	for _, a := range activities {
		breakdown[model.ParseCategory(string(a.Category))] += a.Score
	}
	return breakdown
}

// ComputeMonthlySeries buckets activities by month and returns the most
// recent months, at most six, in ascending order. Activities with an
// unparseable date are skipped.
func ComputeMonthlySeries(activities []*model.Activity) []model.MonthlyPoint {
	buckets := make(map[string]*model.MonthlyPoint)
	for _, a := range activities {
		key := model.MonthKey(a.Date)
		if key == "" {
			continue
		}
		point, ok := buckets[key]
		if !ok {
			point = &model.MonthlyPoint{MonthKey: key}
			buckets[key] = point
		}
		point.ActivityCount++
		point.TotalScore += a.Score
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > 6 {
		keys = keys[len(keys)-6:]
	}

	series := make([]model.MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		series = append(series, *buckets[key])
	}
	return series
}

// ApplyFilter returns the activities matching every populated criterion,
// preserving input order. An empty spec returns the input unchanged.
func ApplyFilter(activities []*model.Activity, spec model.FilterSpec) []*model.Activity {
	if spec.IsEmpty() {
		return activities
	}

	query := strings.ToLower(strings.TrimSpace(spec.Search))

	matched := make([]*model.Activity, 0, len(activities))
	for _, a := range activities {
		if !matchesFilter(a, spec, query) {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

func matchesFilter(a *model.Activity, spec model.FilterSpec, query string) bool {
	if query != "" {
		haystack := strings.ToLower(strings.Join([]string{a.Title, a.Organizer, a.Location, a.Note}, " "))
		if !strings.Contains(haystack, query) {
			return false
		}
	}

	if spec.Category != "" && string(a.Category) != spec.Category {
		return false
	}

	// Date bounds compare lexicographically; ISO dates order correctly
	// that way. An activity without a date never matches a date bound.
	if spec.DateFrom != "" {
		if a.Date == "" || a.Date < spec.DateFrom {
			return false
		}
	}
	if spec.DateTo != "" {
		if a.Date == "" || a.Date > spec.DateTo {
			return false
		}
	}

	if spec.ScoreMin != nil && a.Score < *spec.ScoreMin {
		return false
	}
	if spec.ScoreMax != nil && a.Score > *spec.ScoreMax {
		return false
	}
	if spec.HoursMin != nil && a.Hours < *spec.HoursMin {
		return false
	}
	if spec.HoursMax != nil && a.Hours > *spec.HoursMax {
		return false
	}

	return true
}
