package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	return &SessionRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "ngoaikhoa")).Collection("sessions"),
	}
}

func (r *SessionRepo) CreateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}
	if session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: Failed to cache session: %v", err)
		}
	}

	return nil
}

func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session from database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("Warning: Failed to cache session: %v", err)
		}
	}

	return &session, nil
}

func (r *SessionRepo) UpdateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"last_activity_at": session.LastActivityAt,
			"is_active":        session.IsActive,
			"expires_at":       session.ExpiresAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": session.SessionID}, update)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("failed to update session in database: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("Warning: Failed to update session cache: %v", err)
		}
	}

	return nil
}

func (r *SessionRepo) GetUserActiveSessions(userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		utils.TrackError("database", "session_list_failed")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActivityAt.After(sessions[j].LastActivityAt)
	})
	return sessions, nil
}

func (r *SessionRepo) CountActiveSessions(userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(count), nil
}

// EndLeastActiveSession deactivates the session with the oldest activity,
// making room under the per-user session cap.
func (r *SessionRepo) EndLeastActiveSession(userID string) error {
	sessions, err := r.GetUserActiveSessions(userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	oldest := sessions[len(sessions)-1]
	oldest.IsActive = false
	return r.UpdateSession(oldest)
}

// EndAllSessions deactivates every active session of the user.
func (r *SessionRepo) EndAllSessions(userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		utils.TrackError("database", "session_end_all_failed")
		return fmt.Errorf("failed to end sessions: %w", err)
	}
	return nil
}
