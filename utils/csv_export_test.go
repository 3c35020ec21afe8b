package utils

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"main/model"
)

func TestEncodeActivitiesCSV(t *testing.T) {
	t.Run("starts with BOM and header row", func(t *testing.T) {
		out := EncodeActivitiesCSV(nil)
		if !strings.HasPrefix(out, "\uFEFF") {
			t.Fatal("output missing UTF-8 BOM")
		}
		header := strings.TrimPrefix(out, "\uFEFF")
		if !strings.HasPrefix(header, "STT,Tên hoạt động,Ngày tham gia") {
			t.Errorf("unexpected header: %q", header)
		}
	})

	t.Run("free text is always quoted with doubled quotes", func(t *testing.T) {
		activities := []*model.Activity{
			{
				Title:     `Cuộc thi "Sáng tạo"`,
				Date:      "2025-03-01",
				Category:  model.CategoryCompetition,
				Organizer: "Khoa CNTT",
				Location:  "Phòng A, tầng 3",
				Hours:     2.5,
				Score:     7,
				Note:      "ghi chú",
			},
		}

		out := EncodeActivitiesCSV(activities)
		if !strings.Contains(out, `"Cuộc thi ""Sáng tạo"""`) {
			t.Errorf("embedded quotes not doubled: %q", out)
		}
		if !strings.Contains(out, `"Phòng A, tầng 3"`) {
			t.Errorf("comma-bearing location not quoted: %q", out)
		}
	})

	t.Run("round trips through a CSV reader", func(t *testing.T) {
		activities := []*model.Activity{
			{
				Title:       `Hội thảo "AI, hôm nay"`,
				Date:        "2025-01-15",
				Category:    model.CategorySeminar,
				Organizer:   "Đoàn trường",
				Location:    "Hội trường B",
				Hours:       3,
				Score:       5.5,
				Note:        "dòng 1, dòng 2",
				Attachments: []model.AttachmentRef{{Name: "a.pdf"}, {Name: "b.png"}},
			},
			{
				Title:    "Hiến máu",
				Date:     "2025-02-01",
				Category: model.CategoryVolunteer,
				Score:    10,
			},
		}

		out := strings.TrimPrefix(EncodeActivitiesCSV(activities), "\uFEFF")
		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		if err != nil {
			t.Fatalf("output does not parse as CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header + 2 rows, got %d records", len(records))
		}

		row := records[1]
		if row[0] != "1" {
			t.Errorf("STT = %q, want 1", row[0])
		}
		if row[1] != `Hội thảo "AI, hôm nay"` {
			t.Errorf("title = %q", row[1])
		}
		if row[3] != "Hội thảo" {
			t.Errorf("category display name = %q, want Hội thảo", row[3])
		}
		if row[6] != "3" || row[7] != "5.5" {
			t.Errorf("hours/score = %q/%q, want 3/5.5", row[6], row[7])
		}
		if row[9] != "2" {
			t.Errorf("attachment count = %q, want 2", row[9])
		}

		row2 := records[2]
		if row2[0] != "2" || row2[3] != "Tình nguyện" {
			t.Errorf("second row = %v", row2)
		}
	})

	t.Run("unknown category passes through as code", func(t *testing.T) {
		activities := []*model.Activity{
			{Title: "X", Category: model.Category("mystery")},
		}
		out := EncodeActivitiesCSV(activities)
		if !strings.Contains(out, ",mystery,") {
			t.Errorf("unknown category not passed through: %q", out)
		}
	})
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)

	if got := ExportFilename("my-export", now); got != "my-export_2025-03-15.csv" {
		t.Errorf("ExportFilename = %q", got)
	}
	if got := ExportFilename("", now); got != DefaultExportBaseName+"_2025-03-15.csv" {
		t.Errorf("default base = %q", got)
	}
}
