package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activitiesCollection := db.Collection("activities")
	usersCollection := db.Collection("users")
	sessionsCollection := db.Collection("sessions")

	activityIndexes := []mongo.IndexModel{
		// Owner-scoped listing in creation order
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("owner_activities_date"),
		},
		// Monthly chart grouping
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "month_key", Value: 1},
			},
			Options: options.Index().SetName("owner_month_key"),
		},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().SetName("owner_category"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_index"),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("session_id_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("user_active_sessions"),
		},
	}

	if _, err := activitiesCollection.Indexes().CreateMany(ctx, activityIndexes); err != nil {
		return fmt.Errorf("failed to create activity indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	if _, err := sessionsCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
