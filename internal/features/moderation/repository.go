package moderation

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("reportstrikes")}
}

// EnsureIndexes adds the count index used by Top; the email is the _id
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "count", Value: -1}},
	})
	return err
}

// Increment adds one strike to email and returns the new count.
// The upsert makes concurrent first reports converge on one document.
func (r *Repository) Increment(ctx context.Context, email string, at time.Time) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var strike Strike
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": email},
		bson.M{
			"$inc": bson.M{"count": 1},
			"$set": bson.M{"lastReportedAt": at},
		},
		opts,
	).Decode(&strike)
	if err != nil {
		return 0, err
	}
	return strike.Count, nil
}

// Get returns the strike record for email, zero-valued when none exists
func (r *Repository) Get(ctx context.Context, email string) (*Strike, error) {
	var strike Strike
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&strike)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &Strike{Email: email}, nil
		}
		return nil, err
	}
	return &strike, nil
}

func (r *Repository) Reset(ctx context.Context, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": email})
	return err
}

// Top lists the emails with the most strikes
func (r *Repository) Top(ctx context.Context, limit int64) ([]Strike, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}, {Key: "lastReportedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	strikes := []Strike{}
	if err := cursor.All(ctx, &strikes); err != nil {
		return nil, err
	}
	return strikes, nil
}
