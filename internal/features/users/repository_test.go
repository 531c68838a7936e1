package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestListFilter(t *testing.T) {
	f := listFilter(ListQuery{Status: StatusActive, Search: "a.b"})
	assert.Equal(t, StatusActive, f["status"])

	or := f["$or"].(bson.A)
	require.Len(t, or, 2)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b`, re.Pattern)
	assert.Equal(t, "i", re.Options)

	assert.Empty(t, listFilter(ListQuery{}))
}

func TestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by email", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "status", Value: StatusActive},
		}))

		user, err := repo.GetByEmail(context.Background(), "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, StatusActive, user.Status)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.users", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("block active by email wins", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@x.com"},
			{Key: "status", Value: StatusInactive},
			{Key: "blockedBy", Value: BlockedByAuto},
		}}))

		user, blocked, err := repo.BlockActiveByEmail(context.Background(), "a@x.com", BlockedByAuto, time.Now())
		require.NoError(mt, err)
		assert.True(mt, blocked)
		assert.Equal(mt, BlockedByAuto, user.BlockedBy)
	})

	mt.Run("email lookups ignore stored case", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "Target@X.com"},
				{Key: "status", Value: StatusInactive},
			}}),
			mtest.CreateCursorResponse(0, "aawaz.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "Target@X.com"},
			}),
		)

		_, blocked, err := repo.BlockActiveByEmail(context.Background(), "target+1@x.com", BlockedByAuto, time.Now())
		require.NoError(mt, err)
		assert.True(mt, blocked)

		query := mt.GetStartedEvent().Command.Lookup("query").Document()
		pattern, opts, ok := query.Lookup("email").RegexOK()
		require.True(mt, ok)
		assert.Equal(mt, `^target\+1@x\.com$`, pattern)
		assert.Equal(mt, "i", opts)
		assert.Equal(mt, StatusActive, query.Lookup("status").StringValue())

		user, err := repo.GetByEmail(context.Background(), "target@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, "Target@X.com", user.Email)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		pattern, opts, ok = filter.Lookup("email").RegexOK()
		require.True(mt, ok)
		assert.Equal(mt, `^target@x\.com$`, pattern)
		assert.Equal(mt, "i", opts)
	})

	mt.Run("block active by email no match", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		user, blocked, err := repo.BlockActiveByEmail(context.Background(), "a@x.com", BlockedByAuto, time.Now())
		require.NoError(mt, err)
		assert.False(mt, blocked)
		assert.Nil(mt, user)
	})

	mt.Run("block already inactive conflicts", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "aawaz.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: StatusInactive},
			}),
		)

		_, err := repo.Block(context.Background(), id, "ops@awaaz.app", time.Now())
		assert.ErrorIs(mt, err, apperrors.ErrConflict)
	})

	mt.Run("count by status fills zeros", func(mt *mtest.T) {
		repo := &Repository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "aawaz.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: StatusActive}, {Key: "count", Value: int64(4)}},
		))

		counts, err := repo.CountByStatus(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), counts[StatusActive])
		assert.Equal(mt, int64(0), counts[StatusInactive])
		assert.Equal(mt, int64(0), counts[StatusPending])
	})
}
