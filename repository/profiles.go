package repository

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfilesRepo struct {
	MongoCollection *mongo.Collection
}

func GetProfilesRepo(client *mongo.Client) *ProfilesRepo {
	return &ProfilesRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "ngoaikhoa")).Collection("userProfiles"),
	}
}

// GetOrCreateProfile reads the user's profile, creating it with seeded
// defaults when absent. The upsert with $setOnInsert is the store's atomic
// create-if-absent primitive: two concurrent first accesses converge on a
// single document.
func (r *ProfilesRepo) GetOrCreateProfile(ctx context.Context, uid string, defaults *model.UserProfile) (*model.UserProfile, error) {
	timer := utils.TrackDBOperation("upsert", "userProfiles")
	defer timer.ObserveDuration()

	if uid == "" {
		return nil, &model.ValidationError{Field: "uid", Reason: "user id is required"}
	}

	now := time.Now()
	seed := bson.M{
		"display_name": "",
		"class":        "",
		"faculty":      "",
		"score_target": float64(model.DefaultScoreTarget),
		"created_at":   now,
		"updated_at":   now,
	}
	if defaults != nil {
		if defaults.DisplayName != "" {
			seed["display_name"] = defaults.DisplayName
		}
		if defaults.Email != "" {
			seed["email"] = defaults.Email
		}
		if defaults.ScoreTarget > 0 {
			seed["score_target"] = defaults.ScoreTarget
		}
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile model.UserProfile
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": uid},
		bson.M{"$setOnInsert": seed},
		opts,
	).Decode(&profile)
	if err != nil {
		utils.TrackError("database", "profile_upsert_failed")
		return nil, &model.RepositoryError{Op: "get or create profile", Err: err}
	}

	return &profile, nil
}

// UpdateScoreTarget persists a new score target. Targets must be positive.
func (r *ProfilesRepo) UpdateScoreTarget(ctx context.Context, uid string, target float64) error {
	timer := utils.TrackDBOperation("update", "userProfiles")
	defer timer.ObserveDuration()

	if target <= 0 {
		return &model.ValidationError{Field: "score_target", Reason: "score target must be positive"}
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"score_target": target, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.TrackError("database", "score_target_update_failed")
		return &model.RepositoryError{Op: "update score target", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "profile", ID: uid}
	}
	return nil
}

// UpdateDisplayName trims and persists a new display name; an empty result
// after trimming is rejected.
func (r *ProfilesRepo) UpdateDisplayName(ctx context.Context, uid, name string) error {
	timer := utils.TrackDBOperation("update", "userProfiles")
	defer timer.ObserveDuration()

	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "display_name", Reason: "display name cannot be empty"}
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"display_name": name, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.TrackError("database", "display_name_update_failed")
		return &model.RepositoryError{Op: "update display name", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "profile", ID: uid}
	}
	return nil
}

// UpdateProfile merges the patch into the profile document.
func (r *ProfilesRepo) UpdateProfile(ctx context.Context, uid string, patch *model.ProfilePatch) error {
	timer := utils.TrackDBOperation("update", "userProfiles")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" {
			return &model.ValidationError{Field: "display_name", Reason: "display name cannot be empty"}
		}
		set["display_name"] = name
	}
	if patch.Class != nil {
		set["class"] = *patch.Class
	}
	if patch.Faculty != nil {
		set["faculty"] = *patch.Faculty
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.TrackError("database", "profile_update_failed")
		return &model.RepositoryError{Op: "update profile", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "profile", ID: uid}
	}
	return nil
}
