// Package mongo implements storage.Store on MongoDB.
//
// Each run is one document keyed by run ID. The summary fields are stored
// as top-level document fields so List can sort and project without reading
// the payload; the full run is kept as its JSON encoding so content-type map
// keys and float values round-trip exactly as the other stores write them.
package mongo

import (
	"bytes"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/trackgen/pkg/errors"
	trackio "github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/storage"
)

// Defaults for [Config].
const (
	DefaultDatabase   = "trackgen"
	DefaultCollection = "runs"
	DefaultTimeout    = 10 * time.Second
)

// Config holds MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds the initial connect and ping.
	Timeout time.Duration
}

// Store is a MongoDB-backed run archive.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type document struct {
	ID           string    `bson:"_id"`
	CreatedAt    time.Time `bson:"created_at"`
	Seed         int64     `bson:"seed"`
	ElementCount int       `bson:"element_count"`
	Placed       int       `bson:"placed"`
	Terminated   bool      `bson:"terminated"`
	Payload      []byte    `bson:"payload,omitempty"`
}

// NewStore connects to MongoDB and returns a store.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create index")
	}
	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Save(ctx context.Context, r *run.Run) error {
	var buf bytes.Buffer
	if err := trackio.WriteRun(&buf, r); err != nil {
		return err
	}
	sum := r.Summarize()
	doc := document{
		ID:           sum.ID,
		CreatedAt:    sum.CreatedAt,
		Seed:         int64(sum.Seed),
		ElementCount: sum.ElementCount,
		Placed:       sum.Placed,
		Terminated:   sum.Terminated,
		Payload:      buf.Bytes(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save run %s", r.ID)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*run.Run, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get run %s", id)
	}
	return trackio.ReadRun(bytes.NewReader(doc.Payload))
}

func (s *Store) List(ctx context.Context, limit int) ([]run.Summary, error) {
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"payload": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list runs")
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list runs")
	}

	out := make([]run.Summary, len(docs))
	for i, d := range docs {
		out[i] = run.Summary{
			ID:           d.ID,
			CreatedAt:    d.CreatedAt,
			Seed:         uint64(d.Seed),
			ElementCount: d.ElementCount,
			Placed:       d.Placed,
			Terminated:   d.Terminated,
		}
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete run %s", id)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ storage.Store = (*Store)(nil)
