package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tournamentCollection = "tournaments"

// The stored form of a tournament. The document is kept as JSON
// text so it round trips exactly like in the other stores.
type tournamentRecord struct {
	ID                      string `bson:"_id"`
	core.TournamentMetadata `bson:",inline"`
	Document                string `bson:"document,omitempty"`
}

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     zerolog.Logger
}

func NewMongoStore(ctx context.Context, uri, dbName string, logger zerolog.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to reach mongo: %w", err)
	}

	logger.Debug().Str("database", dbName).Msg("connected to mongo")

	store := newMongoCollectionStore(client.Database(dbName).Collection(tournamentCollection), logger)
	store.client = client
	return store, nil
}

func newMongoCollectionStore(collection *mongo.Collection, logger zerolog.Logger) *MongoStore {
	return &MongoStore{collection: collection, logger: logger}
}

func (s *MongoStore) Save(ctx context.Context, t *core.Tournament) error {
	if t.ID == "" {
		return ErrNoID
	}

	document, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament: %w", err)
	}

	record := tournamentRecord{
		ID:                 t.ID,
		TournamentMetadata: t.Metadata(),
		Document:           string(document),
	}

	filter := bson.D{{Key: "_id", Value: t.ID}}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to save tournament %v: %w", t.ID, err)
	}

	s.logger.Debug().Str("tournament", t.ID).Msg("tournament saved")
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (*core.Tournament, error) {
	var record tournamentRecord
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %v: %w", id, err)
	}
	return decodeTournament([]byte(record.Document))
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete tournament %v: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]core.TournamentMetadata, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "document", Value: 0}}).
		SetSort(bson.D{{Key: "lastUpdated", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	var records []tournamentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode tournaments: %w", err)
	}

	list := make([]core.TournamentMetadata, 0, len(records))
	for _, r := range records {
		list = append(list, r.TournamentMetadata)
	}
	return list, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
