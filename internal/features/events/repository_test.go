package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestListFilter(t *testing.T) {
	f := listFilter(ListQuery{PostType: PostTypeRescue, Status: StatusPending, Search: "boat?"})
	assert.Equal(t, bson.M{"$ne": true}, f["deleted"])
	assert.Equal(t, PostTypeRescue, f["postType"])
	assert.Equal(t, StatusPending, f["status"])

	or := f["$or"].(bson.A)
	require.Len(t, or, 2)
	assert.Equal(t, `boat\?`, or[1].(bson.M)["description"].(primitive.Regex).Pattern)

	assert.Empty(t, listFilter(ListQuery{IncludeDeleted: true}))
}

func TestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update status returns new document", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "status", Value: StatusRejected},
			{Key: "rejectionReason", Value: "spam"},
		}}))

		post, err := repo.UpdateStatus(context.Background(), id, StatusPending, StatusRejected, "spam", "ops@awaaz.app", time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, StatusRejected, post.Status)
		assert.Equal(mt, "spam", post.RejectionReason)
	})

	mt.Run("update status lost race", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateStatus(context.Background(), primitive.NewObjectID(), StatusPending, StatusApproved, "", "ops@awaaz.app", time.Now())
		assert.ErrorIs(mt, err, apperrors.ErrConflict)
	})

	mt.Run("soft delete twice conflicts", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "aawaz.eventposts", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "deleted", Value: true},
			}),
		)

		err := repo.SoftDelete(context.Background(), id, time.Now())
		assert.ErrorIs(mt, err, apperrors.ErrConflict)
	})

	mt.Run("count by type fills zeros", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.eventposts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: PostTypeIncident}, {Key: "count", Value: int64(7)}},
		))

		counts, err := repo.CountByType(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), counts[PostTypeIncident])
		assert.Equal(mt, int64(0), counts[PostTypeRescue])
		assert.Equal(mt, int64(0), counts[PostTypeGeneralCategory])
	})

	mt.Run("daily counts", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.eventposts", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "2026-02-27"}, {Key: "count", Value: int64(2)}},
			bson.D{{Key: "_id", Value: "2026-02-28"}, {Key: "count", Value: int64(5)}},
		))

		points, err := repo.DailyCounts(context.Background(), time.Now().AddDate(0, 0, -7))
		require.NoError(mt, err)
		assert.Equal(mt, []DailyCount{{Date: "2026-02-27", Count: 2}, {Date: "2026-02-28", Count: 5}}, points)
	})
}

func TestAdminRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create type duplicate", func(mt *mtest.T) {
		repo := &AdminRepository{types: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.CreateType(context.Background(), &EventType{Name: "Flood"})
		assert.ErrorIs(mt, err, apperrors.ErrDuplicate)
	})

	mt.Run("reaction counts", func(mt *mtest.T) {
		repo := &AdminRepository{reactions: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.admineventreactions", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "support"}, {Key: "count", Value: int64(3)}},
		))

		counts, err := repo.ReactionCounts(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, []ReactionCount{{Reaction: "support", Count: 3}}, counts)
	})

	mt.Run("soft delete missing", func(mt *mtest.T) {
		repo := &AdminRepository{posts: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.SoftDelete(context.Background(), primitive.NewObjectID(), time.Now())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
		assert.False(mt, mongo.IsDuplicateKeyError(err))
	})
}
