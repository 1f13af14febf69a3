package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConnect_BadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	store, err := Connect(ctx, "mongodb://bad:uri", "fleet")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestList_RequiresLimit(t *testing.T) {
	store := &Store{}
	for _, limit := range []int64{0, -1} {
		docs, err := store.List(context.Background(), "vehicle", ListOptions{Limit: limit})
		assert.ErrorIs(t, err, ErrLimitRequired)
		assert.Nil(t, docs)
	}
}

func TestGetUpdateDelete_InvalidIdentifier(t *testing.T) {
	store := &Store{}
	ctx := context.Background()

	_, err := store.Get(ctx, "load", "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = store.Update(ctx, "load", "123", bson.M{"status": "accepted"})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = store.Delete(ctx, "load", "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestPing_NilClient(t *testing.T) {
	err := (&Store{}).Ping(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestPublicID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{"_id": oid, "plate": "KA01AB1234"}
	publicID(doc)
	assert.Equal(t, oid.Hex(), doc["id"])
	assert.NotContains(t, doc, "_id")

	doc = bson.M{"_id": "custom"}
	publicID(doc)
	assert.Equal(t, "custom", doc["id"])

	doc = bson.M{"plate": "x"}
	publicID(doc)
	assert.NotContains(t, doc, "id")
}

func TestSanitizeUpdate(t *testing.T) {
	set := sanitizeUpdate(bson.M{
		"_id":        "x",
		"id":         "y",
		"created_at": time.Now(),
		"status":     "loaded",
	})
	assert.Equal(t, bson.M{"status": "loaded"}, set)
}

func TestSortDocument(t *testing.T) {
	sort := sortDocument([]SortField{Desc("created_at"), Asc("plate"), {Field: "speed", Direction: -5}})
	assert.Equal(t, bson.D{
		{Key: "created_at", Value: -1},
		{Key: "plate", Value: 1},
		{Key: "speed", Value: -1},
	}, sort)
}

func TestDefaultCollections(t *testing.T) {
	c := DefaultCollections()
	assert.Equal(t, "wallettransaction", c.WalletTransaction)
	assert.Equal(t, "documents", c.Document)
}

// Integration tests (require a running MongoDB)
func integrationStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("DATABASE_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	store, err := Connect(ctx, uri, "test_fleet")
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	t.Cleanup(func() {
		_ = store.database.Drop(context.Background())
		_ = store.Close(context.Background())
	})
	return store
}

func TestStore_CreateThenGet_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "vehicle", bson.M{"plate": "KA01AB1234", "type": "truck"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := store.Get(ctx, "vehicle", id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, id, doc["id"])
	assert.Equal(t, doc["created_at"], doc["updated_at"])
	assert.NotContains(t, doc, "_id")

	docs, err := store.List(ctx, "vehicle", ListOptions{Filter: bson.M{"type": "truck"}, Limit: 500})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0]["id"])
}

func TestStore_CreateKeepsSuppliedTimestamps_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id, err := store.Create(ctx, "user", bson.M{"name": "a", "created_at": stamp})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "user", id)
	require.NoError(t, err)
	assert.Equal(t, primitive.NewDateTimeFromTime(stamp), doc["created_at"])
	assert.NotEqual(t, doc["created_at"], doc["updated_at"])
}

func TestStore_UpdateIsPartial_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "vehicle", bson.M{"plate": "P1", "status": "idle", "make": "Tata"})
	require.NoError(t, err)
	before, err := store.Get(ctx, "vehicle", id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	modified, err := store.Update(ctx, "vehicle", id, bson.M{"status": "enroute", "created_at": time.Now()})
	require.NoError(t, err)
	assert.True(t, modified)

	after, err := store.Get(ctx, "vehicle", id)
	require.NoError(t, err)
	assert.Equal(t, "enroute", after["status"])
	assert.Equal(t, "P1", after["plate"])
	assert.Equal(t, "Tata", after["make"])
	assert.Equal(t, before["created_at"], after["created_at"])

	created := after["created_at"].(primitive.DateTime)
	updated := after["updated_at"].(primitive.DateTime)
	assert.GreaterOrEqual(t, int64(updated), int64(created))

	modified, err = store.Update(ctx, "vehicle", primitive.NewObjectID().Hex(), bson.M{"status": "idle"})
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestStore_DeleteTwice_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "load", bson.M{"product_name": "Cement"})
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, "load", id)
	require.NoError(t, err)
	assert.True(t, deleted)

	doc, err := store.Get(ctx, "load", id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	deleted, err = store.Delete(ctx, "load", id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_ListUnknownFieldIsEmpty_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "load", bson.M{"product_name": "Steel"})
	require.NoError(t, err)

	docs, err := store.List(ctx, "load", ListOptions{Filter: bson.M{"no_such_field": "x"}, Limit: 500})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStore_StoreBlob_Integration(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	id, err := store.StoreBlob(ctx, "documents", bson.M{"name": "rc.pdf", "content_type": "application/pdf"}, []byte("%PDF-1.4"))
	require.NoError(t, err)

	doc, err := store.Get(ctx, "documents", id)
	require.NoError(t, err)
	blob, ok := doc["content"].(primitive.Binary)
	require.True(t, ok)
	assert.Equal(t, []byte("%PDF-1.4"), blob.Data)
	assert.NotNil(t, doc["created_at"])
}
