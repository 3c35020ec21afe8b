package model

import "time"

// Category classifies an extracurricular activity.
type Category string

const (
	CategoryVolunteer   Category = "volunteer"
	CategoryClub        Category = "club"
	CategoryCompetition Category = "competition"
	CategorySeminar     Category = "seminar"
	CategoryCultural    Category = "cultural"
	CategorySports      Category = "sports"
	CategoryAcademic    Category = "academic"
	CategoryOther       Category = "other"
)

// CategoryMeta carries the presentation metadata for a category.
type CategoryMeta struct {
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// CategoryInfo maps each category to its display metadata. Display names are
// the Vietnamese labels the exported CSV uses.
var CategoryInfo = map[Category]CategoryMeta{
	CategoryVolunteer:   {DisplayName: "Tình nguyện", Color: "#22c55e", Icon: "heart"},
	CategoryClub:        {DisplayName: "CLB/Đội nhóm", Color: "#3b82f6", Icon: "users"},
	CategoryCompetition: {DisplayName: "Cuộc thi", Color: "#f59e0b", Icon: "trophy"},
	CategorySeminar:     {DisplayName: "Hội thảo", Color: "#8b5cf6", Icon: "presentation"},
	CategoryCultural:    {DisplayName: "Văn hóa - Nghệ thuật", Color: "#ec4899", Icon: "music"},
	CategorySports:      {DisplayName: "Thể thao", Color: "#ef4444", Icon: "dumbbell"},
	CategoryAcademic:    {DisplayName: "Học thuật", Color: "#06b6d4", Icon: "book"},
	CategoryOther:       {DisplayName: "Khác", Color: "#6b7280", Icon: "tag"},
}

// ParseCategory maps an incoming category code to a known category,
// defaulting to "other" for unset or unknown values.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := CategoryInfo[c]; ok {
		return c
	}
	return CategoryOther
}

// AttachmentRef describes one uploaded file attached to an activity.
// Attachments are immutable: they are appended or removed, never edited.
type AttachmentRef struct {
	Name       string    `bson:"name" json:"name"`
	Type       string    `bson:"type" json:"type"`
	Size       int64     `bson:"size" json:"size"`
	URL        string    `bson:"url" json:"url"`
	Path       string    `bson:"path" json:"path"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type Activity struct {
	ID          string          `bson:"_id,omitempty" json:"id"`
	OwnerID     string          `bson:"owner_id" json:"owner_id"`
	Title       string          `bson:"title" json:"title" binding:"required"`
	Date        string          `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	Category    Category        `bson:"category" json:"category"`
	Location    string          `bson:"location,omitempty" json:"location,omitempty"`
	Organizer   string          `bson:"organizer,omitempty" json:"organizer,omitempty"`
	Hours       float64         `bson:"hours" json:"hours"`
	Score       float64         `bson:"score" json:"score"`
	Note        string          `bson:"note,omitempty" json:"note,omitempty"`
	Attachments []AttachmentRef `bson:"attachments" json:"attachments"`
	MonthKey    string          `bson:"month_key,omitempty" json:"month_key,omitempty"` // YYYY-MM
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updated_at"`
}

// ActivityPatch carries the mutable fields of an update. Nil fields are left
// untouched; the owner can never change through a patch.
type ActivityPatch struct {
	Title       *string          `json:"title,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Organizer   *string          `json:"organizer,omitempty"`
	Hours       *float64         `json:"hours,omitempty"`
	Score       *float64         `json:"score,omitempty"`
	Note        *string          `json:"note,omitempty"`
	Attachments *[]AttachmentRef `json:"attachments,omitempty"`
}

// MonthKey derives the YYYY-MM grouping key from a YYYY-MM-DD date string.
// Returns "" for an empty or malformed date.
func MonthKey(date string) string {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ""
	}
	return date[:7]
}
