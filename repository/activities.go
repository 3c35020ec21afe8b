package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivitiesRepo struct {
	MongoCollection *mongo.Collection
}

func GetActivitiesRepo(client *mongo.Client) *ActivitiesRepo {
	return &ActivitiesRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "ngoaikhoa")).Collection("activities"),
	}
}

// CreateActivity persists a new activity for the owner and returns its id.
// Optional fields are normalized to their defaults, the month key is derived
// from the date, and both timestamps are stamped here.
func (r *ActivitiesRepo) CreateActivity(ctx context.Context, ownerID string, draft *model.Activity) (string, error) {
	timer := utils.TrackDBOperation("insert", "activities")
	defer timer.ObserveDuration()

	if ownerID == "" {
		utils.TrackError("database", "missing_owner")
		return "", &model.ValidationError{Field: "owner_id", Reason: "owner id is required"}
	}

	now := time.Now()
	activity := *draft
	activity.ID = utils.GenerateID()
	activity.OwnerID = ownerID
	activity.Category = model.ParseCategory(string(draft.Category))
	activity.MonthKey = model.MonthKey(draft.Date)
	if activity.Attachments == nil {
		activity.Attachments = []model.AttachmentRef{}
	}
	activity.CreatedAt = now
	activity.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, &activity); err != nil {
		utils.TrackError("database", "activity_insert_failed")
		return "", &model.RepositoryError{Op: "create activity", Err: err}
	}

	utils.TrackActivityOperation("create")
	return activity.ID, nil
}

// ListActivities returns the owner's full activity set ordered by creation
// time descending, ties broken by id ascending. Sorting happens locally so
// the order stays deterministic even for legacy documents without a
// created_at field.
func (r *ActivitiesRepo) ListActivities(ctx context.Context, ownerID string) ([]*model.Activity, error) {
	timer := utils.TrackDBOperation("find", "activities")
	defer timer.ObserveDuration()

	if ownerID == "" {
		return nil, &model.ValidationError{Field: "owner_id", Reason: "owner id is required"}
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		utils.TrackError("database", "activity_list_failed")
		return nil, &model.RepositoryError{Op: "list activities", Err: err}
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		utils.TrackError("database", "activity_decode_failed")
		return nil, &model.RepositoryError{Op: "decode activities", Err: err}
	}

	SortActivities(activities)
	return activities, nil
}

// GetActivity fetches one activity owned by ownerID.
func (r *ActivitiesRepo) GetActivity(ctx context.Context, id, ownerID string) (*model.Activity, error) {
	timer := utils.TrackDBOperation("find", "activities")
	defer timer.ObserveDuration()

	var activity model.Activity
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &model.NotFoundError{Resource: "activity", ID: id}
		}
		utils.TrackError("database", "activity_fetch_failed")
		return nil, &model.RepositoryError{Op: "get activity", Err: err}
	}
	return &activity, nil
}

// SortActivities orders by created_at descending, then id ascending.
func SortActivities(activities []*model.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		if !activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].CreatedAt.After(activities[j].CreatedAt)
		}
		return activities[i].ID < activities[j].ID
	})
}

// UpdateActivity merges the patch into the activity owned by ownerID. The
// owner can never change; the month key is recomputed when the date changes.
func (r *ActivitiesRepo) UpdateActivity(ctx context.Context, id, ownerID string, patch *model.ActivityPatch) error {
	timer := utils.TrackDBOperation("update", "activities")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
		set["month_key"] = model.MonthKey(*patch.Date)
	}
	if patch.Category != nil {
		set["category"] = model.ParseCategory(*patch.Category)
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Organizer != nil {
		set["organizer"] = *patch.Organizer
	}
	if patch.Hours != nil {
		set["hours"] = *patch.Hours
	}
	if patch.Score != nil {
		set["score"] = *patch.Score
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	if patch.Attachments != nil {
		set["attachments"] = *patch.Attachments
	}

	filter := bson.M{"_id": id, "owner_id": ownerID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "activity_update_failed")
		return &model.RepositoryError{Op: "update activity", Err: err}
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "activity_not_found")
		return &model.NotFoundError{Resource: "activity", ID: id}
	}

	utils.TrackActivityOperation("update")
	return nil
}

// RemoveActivity deletes the activity. Removing an absent id is not an
// error; delete is idempotent.
func (r *ActivitiesRepo) RemoveActivity(ctx context.Context, id, ownerID string) error {
	timer := utils.TrackDBOperation("delete", "activities")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		utils.TrackError("database", "activity_delete_failed")
		return &model.RepositoryError{Op: "remove activity", Err: err}
	}

	utils.TrackActivityOperation("delete")
	return nil
}

// Subscribe opens a change stream scoped to the owner's activities and
// invokes onSnapshot with the full re-sorted list after every change, plus
// once up front with the current state. Rapid bursts of remote changes may
// coalesce into fewer snapshots. The returned function stops callback
// delivery immediately and closes the stream; it is safe to call more than
// once. An empty ownerID yields a no-op unsubscribe and no subscription.
func (r *ActivitiesRepo) Subscribe(ownerID string, onSnapshot func([]*model.Activity)) (func(), error) {
	if ownerID == "" {
		return func() {}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Delete events carry no full document, so they pass the match and
	// trigger a (harmless) requery regardless of owner.
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"$or": []bson.M{
				{"fullDocument.owner_id": ownerID},
				{"operationType": "delete"},
			},
		}}},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.MongoCollection.Watch(ctx, pipeline, opts)
	if err != nil {
		cancel()
		utils.TrackError("database", "change_stream_open_failed")
		return nil, &model.RepositoryError{Op: "subscribe activities", Err: err}
	}

	var mu sync.Mutex
	closed := false

	deliver := func(list []*model.Activity) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		onSnapshot(list)
	}

	utils.ActiveSubscriptions.Inc()
	go func() {
		defer stream.Close(context.Background())
		defer utils.ActiveSubscriptions.Dec()

		// Initial snapshot
		if list, err := r.ListActivities(ctx, ownerID); err == nil {
			deliver(list)
		}

		for stream.Next(ctx) {
			list, err := r.ListActivities(ctx, ownerID)
			if err != nil {
				utils.TrackError("database", "snapshot_requery_failed")
				continue
			}
			deliver(list)
		}
	}()

	unsubscribe := func() {
		mu.Lock()
		closed = true
		mu.Unlock()
		cancel()
	}
	return unsubscribe, nil
}
