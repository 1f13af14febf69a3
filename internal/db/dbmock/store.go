// Package dbmock provides a testify mock of db.DocumentStore.
package dbmock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/fleet-manager/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is a mock implementation of db.DocumentStore
type Store struct {
	mock.Mock
}

var _ db.DocumentStore = (*Store)(nil)

func (m *Store) Create(ctx context.Context, collection string, doc bson.M) (string, error) {
	args := m.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

func (m *Store) List(ctx context.Context, collection string, opts db.ListOptions) ([]bson.M, error) {
	args := m.Called(ctx, collection, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *Store) Get(ctx context.Context, collection string, id string) (bson.M, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *Store) Update(ctx context.Context, collection string, id string, partial bson.M) (bool, error) {
	args := m.Called(ctx, collection, id, partial)
	return args.Bool(0), args.Error(1)
}

func (m *Store) Delete(ctx context.Context, collection string, id string) (bool, error) {
	args := m.Called(ctx, collection, id)
	return args.Bool(0), args.Error(1)
}

func (m *Store) StoreBlob(ctx context.Context, collection string, metadata bson.M, content []byte) (string, error) {
	args := m.Called(ctx, collection, metadata, content)
	return args.String(0), args.Error(1)
}

func (m *Store) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	args := m.Called(ctx, collection, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
