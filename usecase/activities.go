package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/repository"
)

const maxTitleLength = 200

type ActivitiesService struct {
	Repo *repository.ActivitiesRepo
}

// validateDraft normalizes a draft in place and rejects malformed input
// before any I/O happens.
func (svc *ActivitiesService) validateDraft(draft *model.Activity) error {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return &model.ValidationError{Field: "title", Reason: "title is required"}
	}
	if len(draft.Title) > maxTitleLength {
		return &model.ValidationError{Field: "title", Reason: "title exceeds maximum length"}
	}

	if draft.Date != "" {
		if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
			return &model.ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
		}
	}

	if draft.Score < 0 {
		return &model.ValidationError{Field: "score", Reason: "score cannot be negative"}
	}
	if draft.Hours < 0 {
		return &model.ValidationError{Field: "hours", Reason: "hours cannot be negative"}
	}

	draft.Category = model.ParseCategory(string(draft.Category))
	if draft.Attachments == nil {
		draft.Attachments = []model.AttachmentRef{}
	}

	return nil
}

// CreateActivity validates the draft and persists it for the owner.
// The caller sees the new record through its subscription, not through
// this call's return.
func (svc *ActivitiesService) CreateActivity(ctx context.Context, ownerID string, draft *model.Activity) (string, error) {
	if err := svc.validateDraft(draft); err != nil {
		return "", err
	}
	return svc.Repo.CreateActivity(ctx, ownerID, draft)
}

// UpdateActivity validates the populated patch fields and merges them.
func (svc *ActivitiesService) UpdateActivity(ctx context.Context, ownerID, id string, patch *model.ActivityPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return &model.ValidationError{Field: "title", Reason: "title is required"}
		}
		if len(title) > maxTitleLength {
			return &model.ValidationError{Field: "title", Reason: "title exceeds maximum length"}
		}
		patch.Title = &title
	}
	if patch.Date != nil && *patch.Date != "" {
		if _, err := time.Parse("2006-01-02", *patch.Date); err != nil {
			return &model.ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
		}
	}
	if patch.Score != nil && *patch.Score < 0 {
		return &model.ValidationError{Field: "score", Reason: "score cannot be negative"}
	}
	if patch.Hours != nil && *patch.Hours < 0 {
		return &model.ValidationError{Field: "hours", Reason: "hours cannot be negative"}
	}

	return svc.Repo.UpdateActivity(ctx, id, ownerID, patch)
}

// RemoveActivity deletes the activity; absent ids are not an error.
func (svc *ActivitiesService) RemoveActivity(ctx context.Context, ownerID, id string) error {
	return svc.Repo.RemoveActivity(ctx, id, ownerID)
}

// List returns the owner's activities with the filter applied.
func (svc *ActivitiesService) List(ctx context.Context, ownerID string, filter model.FilterSpec) ([]*model.Activity, error) {
	activities, err := svc.Repo.ListActivities(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(activities, filter), nil
}

// Subscribe opens a live snapshot subscription for the owner.
func (svc *ActivitiesService) Subscribe(ownerID string, onSnapshot func([]*model.Activity)) (func(), error) {
	return svc.Repo.Subscribe(ownerID, onSnapshot)
}
