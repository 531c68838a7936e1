package events

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles the user-submitted eventposts collection
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("eventposts")}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "deleted", Value: 1},
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{Keys: bson.D{{Key: "postType", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return err
}

func listFilter(q ListQuery) bson.M {
	filter := bson.M{}
	if !q.IncludeDeleted {
		filter["deleted"] = bson.M{"$ne": true}
	}
	if q.PostType != "" {
		filter["postType"] = q.PostType
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func (r *Repository) List(ctx context.Context, q ListQuery) ([]EventPost, int64, error) {
	filter := listFilter(q)

	cursor, err := r.collection.Find(ctx, filter, q.FindOptions("createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []EventPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*EventPost, error) {
	var post EventPost
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("event post: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// UpdateStatus applies a moderation decision if the post is still in from
func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to, reason, by string, at time.Time) (*EventPost, error) {
	set := bson.M{
		"status":     to,
		"reviewedBy": by,
		"reviewedAt": at,
		"updatedAt":  at,
	}
	update := bson.M{"$set": set}
	if to == StatusRejected {
		set["rejectionReason"] = reason
	} else {
		update["$unset"] = bson.M{"rejectionReason": ""}
	}

	filter := bson.M{"_id": id, "status": from, "deleted": bson.M{"$ne": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post EventPost
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("event post changed concurrently: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &post, nil
}

// SoftDelete flags the post deleted; deleting twice is a conflict
func (r *Repository) SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true, "deletedAt": at, "updatedAt": at}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("event post already deleted: %w", apperrors.ErrConflict)
	}
	return nil
}

func (r *Repository) countBy(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "deleted", Value: bson.D{{Key: "$ne", Value: true}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

// CountByStatus groups live posts by moderation status
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.countBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	for _, s := range Statuses {
		counts[s] += 0
	}
	return counts, nil
}

// CountByType groups live posts by postType
func (r *Repository) CountByType(ctx context.Context) (map[string]int64, error) {
	counts, err := r.countBy(ctx, "postType")
	if err != nil {
		return nil, err
	}
	for _, t := range PostTypes {
		counts[t] += 0
	}
	return counts, nil
}

// DailyCounts buckets posts created since `since` by UTC day
func (r *Repository) DailyCounts(ctx context.Context, since time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "deleted", Value: bson.D{{Key: "$ne", Value: true}}},
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	points := []DailyCount{}
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
