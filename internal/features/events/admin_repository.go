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

// AdminRepository covers admineventposts and the collections hanging off it
type AdminRepository struct {
	posts     *mongo.Collection
	reactions *mongo.Collection
	types     *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		posts:     db.Collection("admineventposts"),
		reactions: db.Collection("admineventreactions"),
		types:     db.Collection("admineventtypes"),
	}
}

func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "deleted", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("admineventposts indexes: %w", err)
	}
	if _, err := r.reactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}, {Key: "reaction", Value: 1}},
	}); err != nil {
		return fmt.Errorf("admineventreactions indexes: %w", err)
	}
	if _, err := r.types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}); err != nil {
		return fmt.Errorf("admineventtypes indexes: %w", err)
	}
	return nil
}

func (r *AdminRepository) Create(ctx context.Context, post *AdminEventPost) error {
	post.ID = primitive.NewObjectID()
	_, err := r.posts.InsertOne(ctx, post)
	return err
}

func (r *AdminRepository) List(ctx context.Context, q ListQuery) ([]AdminEventPost, int64, error) {
	filter := bson.M{}
	if !q.IncludeDeleted {
		filter["deleted"] = bson.M{"$ne": true}
	}
	if q.PostType != "" {
		filter["postType"] = q.PostType
	}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}

	cursor, err := r.posts.Find(ctx, filter, q.FindOptions("createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []AdminEventPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID returns a live (not deleted) admin post
func (r *AdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*AdminEventPost, error) {
	var post AdminEventPost
	err := r.posts.FindOne(ctx, bson.M{"_id": id, "deleted": bson.M{"$ne": true}}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// Update applies the non-nil fields of req
func (r *AdminRepository) Update(ctx context.Context, id primitive.ObjectID, req UpdateAdminPostRequest, at time.Time) (*AdminEventPost, error) {
	set := bson.M{"updatedAt": at}
	if req.PostType != nil {
		set["postType"] = *req.PostType
	}
	if req.EventType != nil {
		set["eventType"] = *req.EventType
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post AdminEventPost
	err := r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": set},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// SoftDelete flags the post deleted and returns it as it was
func (r *AdminRepository) SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) (*AdminEventPost, error) {
	var post AdminEventPost
	err := r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true, "deletedAt": at, "updatedAt": at}},
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// ReactionCounts aggregates reactions on one post, most frequent first
func (r *AdminRepository) ReactionCounts(ctx context.Context, postID primitive.ObjectID) ([]ReactionCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "postId", Value: postID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$reaction"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.reactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []ReactionCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *AdminRepository) ListTypes(ctx context.Context) ([]EventType, error) {
	cursor, err := r.types.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	types := []EventType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *AdminRepository) CreateType(ctx context.Context, t *EventType) error {
	t.ID = primitive.NewObjectID()
	if _, err := r.types.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("event type %q: %w", t.Name, apperrors.ErrDuplicate)
		}
		return err
	}
	return nil
}
