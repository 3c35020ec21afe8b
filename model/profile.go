package model

import "time"

// DefaultScoreTarget is seeded into a profile created on first access.
const DefaultScoreTarget = 100

// UserProfile is the single per-user settings document. The document id is
// the owning user's id. An empty display name means the user has not set one
// yet and should be prompted.
type UserProfile struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Class       string    `bson:"class,omitempty" json:"class,omitempty"`
	Faculty     string    `bson:"faculty,omitempty" json:"faculty,omitempty"`
	ScoreTarget float64   `bson:"score_target" json:"score_target"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfilePatch carries the fields a profile-update may change.
type ProfilePatch struct {
	DisplayName *string `json:"display_name,omitempty"`
	Class       *string `json:"class,omitempty"`
	Faculty     *string `json:"faculty,omitempty"`
}
