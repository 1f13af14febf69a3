package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrStoreUnavailable  = errors.New("document store unavailable")
	ErrLimitRequired     = errors.New("list limit must be positive")
)

// MaxListLimit caps every List call regardless of the requested limit.
const MaxListLimit int64 = 1000

// SortField is one (field, direction) pair of a sort specification.
type SortField struct {
	Field     string
	Direction int
}

// Asc sorts by field in ascending order.
func Asc(field string) SortField { return SortField{Field: field, Direction: 1} }

// Desc sorts by field in descending order.
func Desc(field string) SortField { return SortField{Field: field, Direction: -1} }

// ListOptions controls a List query. Limit is mandatory.
type ListOptions struct {
	Filter     bson.M
	Sort       []SortField
	Limit      int64
	Projection bson.M
}

// Store is the MongoDB-backed document store. It owns its client.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	now      func() time.Time
}

// Connect opens a client against uri, verifies it with a ping and selects database name.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo.Ping error: %v", ErrStoreUnavailable, err)
	}
	return NewStore(client, name), nil
}

// NewStore wraps an already connected client.
func NewStore(client *mongo.Client, name string) *Store {
	return &Store{
		client:   client,
		database: client.Database(name),
		now:      defaultNow,
	}
}

// BSON datetimes carry millisecond precision, so stamps are truncated before storing.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("%w: mongo client is nil", ErrStoreUnavailable)
	}
	if err := s.database.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Create inserts doc, stamping created_at and updated_at when absent, and returns the new id.
func (s *Store) Create(ctx context.Context, collection string, doc bson.M) (string, error) {
	payload := make(bson.M, len(doc)+2)
	for k, v := range doc {
		payload[k] = v
	}
	delete(payload, "_id")
	delete(payload, "id")

	now := s.now()
	if payload["created_at"] == nil {
		payload["created_at"] = now
	}
	if payload["updated_at"] == nil {
		payload["updated_at"] = now
	}
	return s.insert(ctx, collection, payload)
}

// StoreBlob inserts metadata together with the raw content as one document.
func (s *Store) StoreBlob(ctx context.Context, collection string, metadata bson.M, content []byte) (string, error) {
	payload := make(bson.M, len(metadata)+3)
	for k, v := range metadata {
		payload[k] = v
	}
	delete(payload, "_id")
	delete(payload, "id")

	now := s.now()
	payload["content"] = primitive.Binary{Subtype: bson.TypeBinaryGeneric, Data: content}
	payload["created_at"] = now
	payload["updated_at"] = now
	return s.insert(ctx, collection, payload)
}

func (s *Store) insert(ctx context.Context, collection string, payload bson.M) (string, error) {
	res, err := s.database.Collection(collection).InsertOne(ctx, payload)
	if err != nil {
		return "", wrapStoreError(err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// List returns the documents matching opts.Filter, each carrying a public "id" field.
func (s *Store) List(ctx context.Context, collection string, opts ListOptions) ([]bson.M, error) {
	if opts.Limit <= 0 {
		return nil, ErrLimitRequired
	}
	limit := opts.Limit
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	filter := opts.Filter
	if filter == nil {
		filter = bson.M{}
	}
	findOptions := options.Find().SetLimit(limit)
	if len(opts.Sort) > 0 {
		findOptions.SetSort(sortDocument(opts.Sort))
	}
	if opts.Projection != nil {
		findOptions.SetProjection(opts.Projection)
	}

	cursor, err := s.database.Collection(collection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapStoreError(err)
	}
	if docs == nil {
		docs = []bson.M{}
	}
	for _, doc := range docs {
		publicID(doc)
	}
	return docs, nil
}

// Get fetches one document by id. A missing document yields (nil, nil).
func (s *Store) Get(ctx context.Context, collection string, id string) (bson.M, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = s.database.Collection(collection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreError(err)
	}
	publicID(doc)
	return doc, nil
}

// Update merges partial into the document and refreshes updated_at.
// It reports whether a document was actually modified.
func (s *Store) Update(ctx context.Context, collection string, id string, partial bson.M) (bool, error) {
	objectID, err := parseID(id)
	if err != nil {
		return false, err
	}

	set := sanitizeUpdate(partial)
	set["updated_at"] = s.now()

	res, err := s.database.Collection(collection).UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return false, wrapStoreError(err)
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes a document by id and reports whether one was removed.
func (s *Store) Delete(ctx context.Context, collection string, id string) (bool, error) {
	objectID, err := parseID(id)
	if err != nil {
		return false, err
	}

	res, err := s.database.Collection(collection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, wrapStoreError(err)
	}
	return res.DeletedCount > 0, nil
}

// Aggregate runs pipeline against collection and materializes the output.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := s.database.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	defer cursor.Close(ctx)

	out := make([]bson.M, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, wrapStoreError(err)
	}
	return out, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return objectID, nil
}

// publicID replaces the internal _id with its string form under "id".
func publicID(doc bson.M) {
	raw, ok := doc["_id"]
	if !ok {
		return
	}
	if oid, ok := raw.(primitive.ObjectID); ok {
		doc["id"] = oid.Hex()
	} else {
		doc["id"] = fmt.Sprint(raw)
	}
	delete(doc, "_id")
}

// sanitizeUpdate copies partial without the keys that must never change after creation.
func sanitizeUpdate(partial bson.M) bson.M {
	set := make(bson.M, len(partial)+1)
	for k, v := range partial {
		switch k {
		case "_id", "id", "created_at":
			continue
		}
		set[k] = v
	}
	return set
}

func sortDocument(fields []SortField) bson.D {
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Direction < 0 {
			dir = -1
		}
		sort = append(sort, bson.E{Key: f.Field, Value: dir})
	}
	return sort
}

func wrapStoreError(err error) error {
	var selectionErr topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.As(err, &selectionErr) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
