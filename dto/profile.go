package dto

import (
	"time"

	"main/model"
)

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type ProfileResponse struct {
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email,omitempty"`
	Class       string          `json:"class,omitempty"`
	Faculty     string          `json:"faculty,omitempty"`
	ScoreTarget float64         `json:"score_target"`
	CreatedAt   time.Time       `json:"created_at"`
	Links       map[string]Link `json:"_links,omitempty"`
}

func ToProfileResponse(profile *model.UserProfile, links map[string]Link) ProfileResponse {
	return ProfileResponse{
		UserID:      profile.ID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		Class:       profile.Class,
		Faculty:     profile.Faculty,
		ScoreTarget: profile.ScoreTarget,
		CreatedAt:   profile.CreatedAt,
		Links:       links,
	}
}
