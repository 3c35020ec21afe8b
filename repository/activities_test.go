package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func setupTestDB(t *testing.T) *mongo.Client {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	os.Setenv("MONGO_DB", "ngoaikhoa_test")

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB not reachable: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("MongoDB not reachable: %v", err)
	}

	utils.MongoClient = client
	t.Cleanup(func() {
		client.Database("ngoaikhoa_test").Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return client
}

func TestActivitiesCRUD(t *testing.T) {
	client := setupTestDB(t)
	repo := GetActivitiesRepo(client)
	ctx := context.Background()

	t.Run("create requires an owner", func(t *testing.T) {
		_, err := repo.CreateActivity(ctx, "", &model.Activity{Title: "X"})
		if !model.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("create and get", func(t *testing.T) {
		id, err := repo.CreateActivity(ctx, "owner1", &model.Activity{
			Title:    "Hiến máu",
			Date:     "2025-03-10",
			Category: model.CategoryVolunteer,
			Score:    10,
		})
		if err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}

		activity, err := repo.GetActivity(ctx, id, "owner1")
		if err != nil {
			t.Fatalf("GetActivity failed: %v", err)
		}
		if activity.Title != "Hiến máu" || activity.MonthKey != "2025-03" {
			t.Errorf("unexpected activity: %+v", activity)
		}
		if activity.Attachments == nil {
			t.Error("attachments should be an empty slice, not nil")
		}
	})

	t.Run("list is owner scoped and sorted", func(t *testing.T) {
		for i, title := range []string{"a", "b", "c"} {
			_, err := repo.CreateActivity(ctx, "owner2", &model.Activity{Title: title})
			if err != nil {
				t.Fatalf("create %d failed: %v", i, err)
			}
			time.Sleep(5 * time.Millisecond)
		}
		_, err := repo.CreateActivity(ctx, "owner3", &model.Activity{Title: "not mine"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		list, err := repo.ListActivities(ctx, "owner2")
		if err != nil {
			t.Fatalf("ListActivities failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 activities, got %d", len(list))
		}
		if list[0].Title != "c" || list[2].Title != "a" {
			t.Errorf("not sorted newest first: %s, %s, %s", list[0].Title, list[1].Title, list[2].Title)
		}
	})

	t.Run("update merges fields and recomputes month key", func(t *testing.T) {
		id, err := repo.CreateActivity(ctx, "owner4", &model.Activity{Title: "old", Date: "2025-01-01"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		newDate := "2025-02-15"
		newScore := 7.5
		err = repo.UpdateActivity(ctx, id, "owner4", &model.ActivityPatch{Date: &newDate, Score: &newScore})
		if err != nil {
			t.Fatalf("UpdateActivity failed: %v", err)
		}

		activity, err := repo.GetActivity(ctx, id, "owner4")
		if err != nil {
			t.Fatalf("GetActivity failed: %v", err)
		}
		if activity.MonthKey != "2025-02" || activity.Score != 7.5 {
			t.Errorf("patch not applied: %+v", activity)
		}
		if activity.Title != "old" {
			t.Errorf("untouched field changed: %q", activity.Title)
		}
	})

	t.Run("update of foreign activity is not found", func(t *testing.T) {
		id, err := repo.CreateActivity(ctx, "owner5", &model.Activity{Title: "mine"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		title := "stolen"
		err = repo.UpdateActivity(ctx, id, "intruder", &model.ActivityPatch{Title: &title})
		if !model.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		id, err := repo.CreateActivity(ctx, "owner6", &model.Activity{Title: "gone"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := repo.RemoveActivity(ctx, id, "owner6"); err != nil {
			t.Fatalf("first remove failed: %v", err)
		}
		if err := repo.RemoveActivity(ctx, id, "owner6"); err != nil {
			t.Fatalf("second remove failed: %v", err)
		}
	})
}

func TestSortActivities(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	activities := []*model.Activity{
		{ID: "b", CreatedAt: base},
		{ID: "a", CreatedAt: base},
		{ID: "c", CreatedAt: base.Add(time.Hour)},
	}

	SortActivities(activities)

	if activities[0].ID != "c" {
		t.Errorf("newest not first: %s", activities[0].ID)
	}
	// Equal timestamps fall back to id ascending
	if activities[1].ID != "a" || activities[2].ID != "b" {
		t.Errorf("tiebreak wrong: %s, %s", activities[1].ID, activities[2].ID)
	}
}

func TestSubscribeEmptyOwner(t *testing.T) {
	repo := &ActivitiesRepo{}
	unsubscribe, err := repo.Subscribe("", func([]*model.Activity) {
		t.Error("callback must never fire for an empty owner")
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Safe to call repeatedly
	unsubscribe()
	unsubscribe()
}
