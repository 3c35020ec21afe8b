package utils

import (
	"strconv"
	"strings"
	"time"

	"main/model"
)

// DefaultExportBaseName is the fallback base for exported file names.
const DefaultExportBaseName = "hoat-dong-ngoai-khoa"

// csvHeaders is the fixed header row of an export.
var csvHeaders = []string{
	"STT",
	"Tên hoạt động",
	"Ngày tham gia",
	"Danh mục",
	"Ban tổ chức",
	"Địa điểm",
	"Số giờ",
	"Điểm",
	"Ghi chú",
	"Số file đính kèm",
}

// EncodeActivitiesCSV serializes activities to CSV in input order. Free-text
// fields are always double-quoted with embedded quotes doubled, and the
// output is prefixed with a UTF-8 BOM so spreadsheet tools keep Vietnamese
// text intact. Category codes map to display names; unknown codes pass
// through unchanged.
func EncodeActivitiesCSV(activities []*model.Activity) string {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(csvHeaders, ","))

	for i, a := range activities {
		row := []string{
			strconv.Itoa(i + 1),
			quoteCSV(a.Title),
			a.Date,
			categoryDisplayName(a.Category),
			quoteCSV(a.Organizer),
			quoteCSV(a.Location),
			formatCSVNumber(a.Hours),
			formatCSVNumber(a.Score),
			quoteCSV(a.Note),
			strconv.Itoa(len(a.Attachments)),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	return b.String()
}

// ExportFilename builds "<base>_<ISO-date>.csv" for the given day.
func ExportFilename(base string, now time.Time) string {
	if base == "" {
		base = DefaultExportBaseName
	}
	return base + "_" + now.Format("2006-01-02") + ".csv"
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func categoryDisplayName(c model.Category) string {
	if meta, ok := model.CategoryInfo[c]; ok {
		return meta.DisplayName
	}
	return string(c)
}

func formatCSVNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
