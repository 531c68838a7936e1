package notifications

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("notifications")}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipientEmail", Value: 1},
				{Key: "isRead", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}

// Create inserts a single unread notification
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.IsRead = false

	_, err := r.collection.InsertOne(ctx, n)
	return err
}

func listFilter(q ListQuery) bson.M {
	filter := bson.M{}
	if q.Email != "" {
		filter["recipientEmail"] = q.Email
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.UnreadOnly {
		filter["isRead"] = false
	}
	return filter
}

// List returns notifications newest first
func (r *Repository) List(ctx context.Context, q ListQuery) ([]Notification, int64, error) {
	filter := listFilter(q)

	cursor, err := r.collection.Find(ctx, filter, q.FindOptions("createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notifications := []Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkAsRead marks a notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification: %w", apperrors.ErrNotFound)
	}
	return nil
}

// CountUnread counts unread notifications, optionally for one recipient
func (r *Repository) CountUnread(ctx context.Context, email string) (int64, error) {
	filter := bson.M{"isRead": false}
	if email != "" {
		filter["recipientEmail"] = email
	}
	return r.collection.CountDocuments(ctx, filter)
}
