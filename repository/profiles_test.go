package repository

import (
	"context"
	"sync"
	"testing"

	"main/model"
)

func TestGetOrCreateProfile(t *testing.T) {
	client := setupTestDB(t)
	repo := GetProfilesRepo(client)
	ctx := context.Background()

	t.Run("creates with defaults on first access", func(t *testing.T) {
		profile, err := repo.GetOrCreateProfile(ctx, "user1", &model.UserProfile{
			DisplayName: "Nguyễn Văn A",
			Email:       "a@example.com",
		})
		if err != nil {
			t.Fatalf("GetOrCreateProfile failed: %v", err)
		}
		if profile.ID != "user1" {
			t.Errorf("ID = %q, want user1", profile.ID)
		}
		if profile.DisplayName != "Nguyễn Văn A" {
			t.Errorf("DisplayName = %q", profile.DisplayName)
		}
		if profile.ScoreTarget != model.DefaultScoreTarget {
			t.Errorf("ScoreTarget = %v, want %v", profile.ScoreTarget, model.DefaultScoreTarget)
		}
	})

	t.Run("second access returns the existing profile", func(t *testing.T) {
		first, err := repo.GetOrCreateProfile(ctx, "user2", &model.UserProfile{DisplayName: "Original"})
		if err != nil {
			t.Fatalf("first access failed: %v", err)
		}

		second, err := repo.GetOrCreateProfile(ctx, "user2", &model.UserProfile{DisplayName: "Changed"})
		if err != nil {
			t.Fatalf("second access failed: %v", err)
		}
		if second.DisplayName != first.DisplayName {
			t.Errorf("defaults overwrote existing profile: %q", second.DisplayName)
		}
	})

	t.Run("concurrent first accesses converge on one document", func(t *testing.T) {
		var wg sync.WaitGroup
		profiles := make([]*model.UserProfile, 8)
		for i := range profiles {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				p, err := repo.GetOrCreateProfile(ctx, "user3", &model.UserProfile{DisplayName: "Race"})
				if err != nil {
					t.Errorf("goroutine %d failed: %v", i, err)
					return
				}
				profiles[i] = p
			}(i)
		}
		wg.Wait()

		for i, p := range profiles {
			if p == nil {
				continue
			}
			if !p.CreatedAt.Equal(profiles[0].CreatedAt) {
				t.Errorf("profile %d has different created_at; more than one document was created", i)
			}
		}
	})

	t.Run("empty uid is rejected", func(t *testing.T) {
		_, err := repo.GetOrCreateProfile(ctx, "", nil)
		if !model.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUpdateScoreTarget(t *testing.T) {
	client := setupTestDB(t)
	repo := GetProfilesRepo(client)
	ctx := context.Background()

	if _, err := repo.GetOrCreateProfile(ctx, "user4", nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("positive target persists", func(t *testing.T) {
		if err := repo.UpdateScoreTarget(ctx, "user4", 150); err != nil {
			t.Fatalf("UpdateScoreTarget failed: %v", err)
		}
		profile, err := repo.GetOrCreateProfile(ctx, "user4", nil)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if profile.ScoreTarget != 150 {
			t.Errorf("ScoreTarget = %v, want 150", profile.ScoreTarget)
		}
	})

	t.Run("non-positive target is rejected", func(t *testing.T) {
		if err := repo.UpdateScoreTarget(ctx, "user4", 0); !model.IsValidation(err) {
			t.Errorf("zero target accepted: %v", err)
		}
		if err := repo.UpdateScoreTarget(ctx, "user4", -5); !model.IsValidation(err) {
			t.Errorf("negative target accepted: %v", err)
		}
	})

	t.Run("unknown profile is not found", func(t *testing.T) {
		if err := repo.UpdateScoreTarget(ctx, "ghost", 50); !model.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestUpdateDisplayName(t *testing.T) {
	client := setupTestDB(t)
	repo := GetProfilesRepo(client)
	ctx := context.Background()

	if _, err := repo.GetOrCreateProfile(ctx, "user5", nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := repo.UpdateDisplayName(ctx, "user5", "  Trần B  "); err != nil {
		t.Fatalf("UpdateDisplayName failed: %v", err)
	}
	profile, err := repo.GetOrCreateProfile(ctx, "user5", nil)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if profile.DisplayName != "Trần B" {
		t.Errorf("DisplayName = %q, want trimmed value", profile.DisplayName)
	}

	if err := repo.UpdateDisplayName(ctx, "user5", "   "); !model.IsValidation(err) {
		t.Errorf("blank name accepted: %v", err)
	}
}
