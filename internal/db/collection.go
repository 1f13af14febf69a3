package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentStore defines the collection-agnostic operations the service layer needs.
type DocumentStore interface {
	Create(ctx context.Context, collection string, doc bson.M) (string, error)
	List(ctx context.Context, collection string, opts ListOptions) ([]bson.M, error)
	Get(ctx context.Context, collection string, id string) (bson.M, error)
	Update(ctx context.Context, collection string, id string, partial bson.M) (bool, error)
	Delete(ctx context.Context, collection string, id string) (bool, error)
	StoreBlob(ctx context.Context, collection string, metadata bson.M, content []byte) (string, error)
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)
	Ping(ctx context.Context) error
}

// Collections maps every resource kind to the collection it is stored in.
type Collections struct {
	User              string
	Vehicle           string
	Load              string
	WalletTransaction string
	Document          string
	Notification      string
}

// DefaultCollections returns the collection names used when no override is configured.
func DefaultCollections() Collections {
	return Collections{
		User:              "user",
		Vehicle:           "vehicle",
		Load:              "load",
		WalletTransaction: "wallettransaction",
		Document:          "documents",
		Notification:      "notification",
	}
}
