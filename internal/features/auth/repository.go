package auth

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

// Repository handles the admins collection
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("admins")}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new admin; a taken email is ErrDuplicate
func (r *Repository) Create(ctx context.Context, admin *Admin) error {
	result, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("admin %s: %w", admin.Email, apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*Admin, error) {
	var admin Admin
	if err := r.collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// TouchLogin records a successful sign-in
func (r *Repository) TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLoginAt": at, "updatedAt": at}},
	)
	return err
}
