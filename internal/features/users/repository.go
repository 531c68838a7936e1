package users

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

// Repository handles database interactions for app users
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("users")}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}

func listFilter(q ListQuery) bson.M {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}
	return filter
}

// List returns one page of users, newest first, and the total match count
func (r *Repository) List(ctx context.Context, q ListQuery) ([]User, int64, error) {
	filter := listFilter(q)

	cursor, err := r.collection.Find(ctx, filter, q.FindOptions("createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetByID finds a user by their MongoDB ID
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// emailMatch matches email regardless of the case the mobile app stored it in
func emailMatch(email string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}
}

// GetByEmail finds a user by email, ignoring case
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": emailMatch(email)})
}

// GetByIDs batch-loads users, used to enrich posts and reports
func (r *Repository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// transition applies update only when the current status is in from. A miss is
// resolved into ErrNotFound or ErrConflict by a follow-up read.
func (r *Repository) transition(ctx context.Context, filter bson.M, from []string, update bson.M) (*User, error) {
	guarded := bson.M{}
	for k, v := range filter {
		guarded[k] = v
	}
	guarded["status"] = bson.M{"$in": from}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := r.collection.FindOneAndUpdate(ctx, guarded, update, opts).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	current, findErr := r.findOne(ctx, filter)
	if findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("user is %s: %w", current.Status, apperrors.ErrConflict)
}

func blockUpdate(by string, at time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"status":    StatusInactive,
		"blockedBy": by,
		"blockedAt": at,
		"updatedAt": at,
	}}
}

// Block marks a non-inactive user inactive on behalf of by
func (r *Repository) Block(ctx context.Context, id primitive.ObjectID, by string, at time.Time) (*User, error) {
	return r.transition(ctx, bson.M{"_id": id}, []string{StatusActive, StatusPending}, blockUpdate(by, at))
}

// BlockActiveByEmail deactivates the user with email only if currently active.
// blocked is false when no active user matched, so exactly one caller wins.
func (r *Repository) BlockActiveByEmail(ctx context.Context, email, by string, at time.Time) (*User, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"email": emailMatch(email), "status": StatusActive},
		blockUpdate(by, at),
		opts,
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &user, true, nil
}

// Unblock reactivates an inactive user and clears the block markers
func (r *Repository) Unblock(ctx context.Context, id primitive.ObjectID, at time.Time) (*User, error) {
	update := bson.M{
		"$set":   bson.M{"status": StatusActive, "updatedAt": at},
		"$unset": bson.M{"blockedBy": "", "blockedAt": ""},
	}
	return r.transition(ctx, bson.M{"_id": id}, []string{StatusInactive}, update)
}

// SetStatus writes status directly, clearing block markers unless it is inactive
func (r *Repository) SetStatus(ctx context.Context, id primitive.ObjectID, status, by string, at time.Time) (*User, error) {
	var update bson.M
	if status == StatusInactive {
		update = blockUpdate(by, at)
	} else {
		update = bson.M{
			"$set":   bson.M{"status": status, "updatedAt": at},
			"$unset": bson.M{"blockedBy": "", "blockedAt": ""},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// CountByStatus groups users by status for the dashboard
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
