package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rowanhq/headliner/internal/types"
)

// MongoStore persists the integrated dataset in a MongoDB collection.
// Documents carry an explicit seq field because merge precedence depends
// on stored order and Mongo does not guarantee insertion order on reads.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

type headlineDoc struct {
	Seq            int    `bson:"seq"`
	Headline       string `bson:"headline"`
	Source         string `bson:"source"`
	CollectionDate string `bson:"collection_date"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &types.StoreError{Backend: "mongo", Path: uri, Err: fmt.Errorf("connect: %w", err)}
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, &types.StoreError{Backend: "mongo", Path: uri, Err: fmt.Errorf("ping: %w", err)}
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store", "collection", collection),
	}, nil
}

func (s *MongoStore) Name() string { return "mongo" }

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context) (types.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: fmt.Errorf("find: %w", err)}
	}
	defer cursor.Close(ctx)

	var records types.Batch
	for cursor.Next(ctx) {
		var doc headlineDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: fmt.Errorf("decode: %w", err)}
		}
		records = append(records, types.HeadlineRecord{
			Text:           doc.Headline,
			Source:         types.Source(doc.Source),
			CollectionDate: doc.CollectionDate,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}

	s.logger.Debug("dataset loaded", "records", len(records))
	return records, nil
}

// Replace implements Store. The collection is dropped and rewritten; the
// two operations are not transactional, but a failed rewrite is surfaced
// as a fatal error rather than silently losing data.
func (s *MongoStore) Replace(ctx context.Context, records types.Batch) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if err := s.collection.Drop(ctx); err != nil {
		return &types.StoreError{Backend: s.Name(), Err: fmt.Errorf("drop: %w", err)}
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = headlineDoc{
			Seq:            i,
			Headline:       rec.Text,
			Source:         string(rec.Source),
			CollectionDate: rec.CollectionDate,
		}
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StoreError{Backend: s.Name(), Err: fmt.Errorf("insert: %w", err)}
	}

	s.logger.Info("dataset written", "records", len(records))
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
