package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDoc() bson.D {
	u := sampleUser()
	return bson.D{
		{Key: "_id", Value: u.ID},
		{Key: "email", Value: u.Email},
		{Key: "username", Value: u.Username},
		{Key: "password", Value: u.PasswordHash},
		{Key: "created_at", Value: u.CreatedAt},
		{Key: "updated_at", Value: u.UpdatedAt},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, NewMongoRepository(mt.Coll).EnsureIndexes(ctx))
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := sampleUser()
		got, err := NewMongoRepository(mt.Coll).Create(ctx, u)
		require.NoError(mt, err)
		assert.Equal(mt, u, got)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: username_unique",
		}))

		_, err := NewMongoRepository(mt.Coll).Create(ctx, sampleUser())
		assert.ErrorIs(mt, err, common.ErrAlreadyExists)
	})

	mt.Run("create other error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := NewMongoRepository(mt.Coll).Create(ctx, sampleUser())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, common.ErrAlreadyExists)
		assert.Contains(mt, err.Error(), "mongo error")
	})

	mt.Run("get by username", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc()))

		want := sampleUser()
		got, err := NewMongoRepository(mt.Coll).GetByUsername(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, want.ID, got.ID)
		assert.Equal(mt, want.Email, got.Email)
		assert.Equal(mt, want.PasswordHash, got.PasswordHash)
		assert.True(mt, want.CreatedAt.Equal(got.CreatedAt))
	})

	mt.Run("get by email", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc()))

		got, err := NewMongoRepository(mt.Coll).GetByEmail(ctx, "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "alice", got.Username)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongoRepository(mt.Coll).GetByID(ctx, "ghost")
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("update password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, NewMongoRepository(mt.Coll).UpdatePassword(ctx, sampleUser().ID, "new-hash"))
	})

	mt.Run("update password missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewMongoRepository(mt.Coll).UpdatePassword(ctx, "ghost", "new-hash")
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})
}
