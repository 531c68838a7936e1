package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("reports")}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{Keys: bson.D{{Key: "targetUserEmail", Value: 1}}},
	})
	return err
}

func (r *Repository) Create(ctx context.Context, report *Report) error {
	report.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// List returns reports of one type, newest first
func (r *Repository) List(ctx context.Context, q ListQuery) ([]Report, int64, error) {
	filter := bson.M{"type": q.Type}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	cursor, err := r.collection.Find(ctx, filter, q.FindOptions("createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	var report Report
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("report: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &report, nil
}

// UpdateStatus moves a report out of from. A concurrent change of status
// makes the filter miss and surfaces as ErrConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to, note, by string, at time.Time) (*Report, error) {
	set := bson.M{"status": to, "updatedAt": at}
	if note != "" {
		set["note"] = note
	}
	update := bson.M{"$set": set}
	if to == StatusResolved || to == StatusDismissed {
		set["resolvedBy"] = by
		set["resolvedAt"] = at
	} else {
		update["$unset"] = bson.M{"resolvedBy": "", "resolvedAt": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report Report
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": from}, update, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("report changed concurrently: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &report, nil
}

// CountOpenByType counts reports not yet closed, grouped by type
func (r *Repository) CountOpenByType(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{
			{Key: "$in", Value: bson.A{StatusOpen, StatusInReview}},
		}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(Types))
	for _, t := range Types {
		counts[t] = 0
	}
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}
