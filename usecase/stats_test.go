package usecase

import (
	"testing"
	"time"

	"main/model"
)

func ptr(f float64) *float64 { return &f }

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("empty list", func(t *testing.T) {
		stats := ComputeStats(nil, now)
		if stats.TotalCount != 0 || stats.TotalScore != 0 || stats.CountThisMonth != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("sums scores and counts current month", func(t *testing.T) {
		activities := []*model.Activity{
			{Title: "A", Date: "2025-03-01", Score: 5},
			{Title: "B", Date: "2025-03-20", Score: 2.5},
			{Title: "C", Date: "2025-02-28", Score: 10},
			{Title: "D", Date: "", Score: 1}, // no date, never "this month"
		}

		stats := ComputeStats(activities, now)
		if stats.TotalCount != 4 {
			t.Errorf("TotalCount = %d, want 4", stats.TotalCount)
		}
		if stats.TotalScore != 18.5 {
			t.Errorf("TotalScore = %v, want 18.5", stats.TotalScore)
		}
		if stats.CountThisMonth != 2 {
			t.Errorf("CountThisMonth = %d, want 2", stats.CountThisMonth)
		}
	})

	t.Run("missing scores count as zero", func(t *testing.T) {
		activities := []*model.Activity{
			{Title: "A", Date: "2025-03-01"},
			{Title: "B", Date: "2025-03-02"},
		}
		stats := ComputeStats(activities, now)
		if stats.TotalScore != 0 {
			t.Errorf("TotalScore = %v, want 0", stats.TotalScore)
		}
		if stats.TotalCount != 2 {
			t.Errorf("TotalCount = %d, want 2", stats.TotalCount)
		}
	})
}

func TestComputeCategoryBreakdown(t *testing.T) {
	t.Run("sums per category and omits empty ones", func(t *testing.T) {
		activities := []*model.Activity{
			{Title: "Run", Category: model.CategorySports, Score: 5},
			{Title: "Swim", Category: model.CategorySports, Score: 10},
			{Title: "Talk", Category: model.CategorySeminar, Score: 3},
		}

		breakdown := ComputeCategoryBreakdown(activities)
		if len(breakdown) != 2 {
			t.Fatalf("expected 2 categories, got %d: %v", len(breakdown), breakdown)
		}
		if breakdown[model.CategorySports] != 15 {
			t.Errorf("sports = %v, want 15", breakdown[model.CategorySports])
		}
		if breakdown[model.CategorySeminar] != 3 {
			t.Errorf("seminar = %v, want 3", breakdown[model.CategorySeminar])
		}
		if _, ok := breakdown[model.CategoryVolunteer]; ok {
			t.Error("volunteer should not appear in breakdown")
		}
	})

	t.Run("unknown category folds into other", func(t *testing.T) {
		activities := []*model.Activity{
			{Title: "X", Category: model.Category("mystery"), Score: 4},
		}
		breakdown := ComputeCategoryBreakdown(activities)
		if breakdown[model.CategoryOther] != 4 {
			t.Errorf("other = %v, want 4", breakdown[model.CategoryOther])
		}
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		if breakdown := ComputeCategoryBreakdown(nil); len(breakdown) != 0 {
			t.Errorf("expected empty breakdown, got %v", breakdown)
		}
	})
}

func TestComputeMonthlySeries(t *testing.T) {
	t.Run("buckets by month ascending", func(t *testing.T) {
		activities := []*model.Activity{
			{Date: "2025-02-10", Score: 3},
			{Date: "2025-01-05", Score: 1},
			{Date: "2025-02-20", Score: 2},
			{Date: "2025-03-01", Score: 5},
		}

		series := ComputeMonthlySeries(activities)
		if len(series) != 3 {
			t.Fatalf("expected 3 points, got %d", len(series))
		}

		want := []model.MonthlyPoint{
			{MonthKey: "2025-01", ActivityCount: 1, TotalScore: 1},
			{MonthKey: "2025-02", ActivityCount: 2, TotalScore: 5},
			{MonthKey: "2025-03", ActivityCount: 1, TotalScore: 5},
		}
		for i, p := range series {
			if p != want[i] {
				t.Errorf("series[%d] = %+v, want %+v", i, p, want[i])
			}
		}
	})

	t.Run("keeps only the six most recent months", func(t *testing.T) {
		activities := []*model.Activity{
			{Date: "2024-09-01"}, {Date: "2024-10-01"}, {Date: "2024-11-01"},
			{Date: "2024-12-01"}, {Date: "2025-01-01"}, {Date: "2025-02-01"},
			{Date: "2025-03-01"}, {Date: "2024-08-01"},
		}

		series := ComputeMonthlySeries(activities)
		if len(series) != 6 {
			t.Fatalf("expected 6 points, got %d", len(series))
		}
		if series[0].MonthKey != "2024-10" {
			t.Errorf("first point = %s, want 2024-10", series[0].MonthKey)
		}
		if series[5].MonthKey != "2025-03" {
			t.Errorf("last point = %s, want 2025-03", series[5].MonthKey)
		}
		for i := 1; i < len(series); i++ {
			if series[i-1].MonthKey >= series[i].MonthKey {
				t.Errorf("series not strictly ascending at %d: %s >= %s",
					i, series[i-1].MonthKey, series[i].MonthKey)
			}
		}
	})

	t.Run("skips unparseable dates", func(t *testing.T) {
		activities := []*model.Activity{
			{Date: "not-a-date", Score: 9},
			{Date: "", Score: 9},
			{Date: "2025-01-15", Score: 1},
		}
		series := ComputeMonthlySeries(activities)
		if len(series) != 1 || series[0].MonthKey != "2025-01" {
			t.Fatalf("expected only 2025-01, got %v", series)
		}
	})
}

func filterFixture() []*model.Activity {
	return []*model.Activity{
		{ID: "1", Title: "Hiến máu nhân đạo", Organizer: "Đoàn trường", Location: "Hội trường A", Note: "đợt 1", Date: "2025-01-10", Category: model.CategoryVolunteer, Score: 10, Hours: 4},
		{ID: "2", Title: "Giải bóng đá", Organizer: "CLB Thể thao", Location: "Sân vận động", Date: "2025-02-05", Category: model.CategorySports, Score: 8, Hours: 2},
		{ID: "3", Title: "Hội thảo AI", Organizer: "Khoa CNTT", Location: "Phòng 301", Date: "2025-02-20", Category: model.CategorySeminar, Score: 5, Hours: 3},
		{ID: "4", Title: "Không ngày", Organizer: "", Location: "", Category: model.CategoryOther, Score: 2, Hours: 1},
	}
}

func TestApplyFilter(t *testing.T) {
	t.Run("empty spec returns input unchanged", func(t *testing.T) {
		activities := filterFixture()
		got := ApplyFilter(activities, model.FilterSpec{})
		if len(got) != len(activities) {
			t.Fatalf("expected %d activities, got %d", len(activities), len(got))
		}
		for i := range got {
			if got[i].ID != activities[i].ID {
				t.Errorf("order changed at %d: %s != %s", i, got[i].ID, activities[i].ID)
			}
		}
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		spec := model.FilterSpec{Category: string(model.CategorySports)}
		once := ApplyFilter(filterFixture(), spec)
		twice := ApplyFilter(once, spec)
		if len(once) != len(twice) {
			t.Errorf("idempotence broken: %d != %d", len(once), len(twice))
		}
	})

	t.Run("case-insensitive search over text fields", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{Search: "hội"})
		// Matches "Hội trường A" (location) and "Hội thảo AI" (title)
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		if got[0].ID != "1" || got[1].ID != "3" {
			t.Errorf("got ids %s, %s; want 1, 3", got[0].ID, got[1].ID)
		}
	})

	t.Run("search matches organizer and note", func(t *testing.T) {
		if got := ApplyFilter(filterFixture(), model.FilterSpec{Search: "đoàn trường"}); len(got) != 1 || got[0].ID != "1" {
			t.Errorf("organizer search failed: %v", got)
		}
		if got := ApplyFilter(filterFixture(), model.FilterSpec{Search: "đợt 1"}); len(got) != 1 || got[0].ID != "1" {
			t.Errorf("note search failed: %v", got)
		}
	})

	t.Run("category exact match", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{Category: string(model.CategorySeminar)})
		if len(got) != 1 || got[0].ID != "3" {
			t.Fatalf("expected only activity 3, got %v", got)
		}
	})

	t.Run("date bounds are inclusive and exclude missing dates", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{DateFrom: "2025-02-05", DateTo: "2025-02-20"})
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		for _, a := range got {
			if a.ID == "4" {
				t.Error("activity without a date must not match a date bound")
			}
		}
	})

	t.Run("score bounds are inclusive", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{ScoreMin: ptr(8)})
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		if got[0].ID != "1" || got[1].ID != "2" {
			t.Errorf("got ids %s, %s; want 1, 2", got[0].ID, got[1].ID)
		}

		got = ApplyFilter(filterFixture(), model.FilterSpec{ScoreMin: ptr(8), ScoreMax: ptr(8)})
		if len(got) != 1 || got[0].ID != "2" {
			t.Errorf("inclusive bounds failed: %v", got)
		}
	})

	t.Run("hours bounds", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{HoursMin: ptr(2), HoursMax: ptr(3)})
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
	})

	t.Run("criteria combine conjunctively", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{
			Search:   "hội",
			Category: string(model.CategorySeminar),
			ScoreMin: ptr(1),
		})
		if len(got) != 1 || got[0].ID != "3" {
			t.Fatalf("conjunction failed: %v", got)
		}
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got := ApplyFilter(filterFixture(), model.FilterSpec{Search: "nonexistent"})
		if len(got) != 0 {
			t.Errorf("expected no matches, got %d", len(got))
		}
	})
}
