package repository

import (
	"context"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "ngoaikhoa")).Collection("users"),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return &model.ValidationError{Field: "user", Reason: "email and password required"}
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_email")
			return &model.ValidationError{Field: "email", Reason: "email already registered"}
		}
		utils.TrackError("database", "user_creation_failed")
		return &model.RepositoryError{Op: "add user", Err: err}
	}

	return nil
}

// FindUserByEmail returns (nil, nil) when no user matches.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, &model.RepositoryError{Op: "find user by email", Err: err}
	}

	return &user, nil
}

// FindUser returns (nil, nil) when no user matches.
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, &model.RepositoryError{Op: "find user", Err: err}
	}

	return &user, nil
}

func (r *UserRepo) Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, recoveryCodes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": true,
			"recovery_codes":     recoveryCodes,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		utils.TrackError("database", "2fa_enable_failed")
		return &model.RepositoryError{Op: "enable 2fa", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "user", ID: userID}
	}

	return nil
}

// UpdateRecoveryCodes replaces the stored recovery code hashes, typically
// after one has been consumed.
func (r *UserRepo) UpdateRecoveryCodes(ctx context.Context, userID string, recoveryCodes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"recovery_codes": recoveryCodes}},
	)
	if err != nil {
		utils.TrackError("database", "recovery_codes_update_failed")
		return &model.RepositoryError{Op: "update recovery codes", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "user", ID: userID}
	}

	return nil
}

func (r *UserRepo) Disable2FA(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"two_factor_secret":  "",
			"two_factor_enabled": false,
			"recovery_codes":     nil,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		utils.TrackError("database", "2fa_disable_failed")
		return &model.RepositoryError{Op: "disable 2fa", Err: err}
	}
	if result.MatchedCount == 0 {
		return &model.NotFoundError{Resource: "user", ID: userID}
	}

	return nil
}
