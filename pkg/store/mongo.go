// Package store persists computed layouts in MongoDB.
//
// The engine itself is stateless; the store is an archive for the API
// server so a frontend can re-fetch a layout by its graph content hash
// without resubmitting the graph. Entries are immutable: a hash fully
// determines the layout it maps to, so saves are idempotent upserts.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	procerrors "github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/layout"
)

// Config configures the MongoDB connection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// DefaultConfig returns the standard database and collection names.
// URI must still be supplied by the caller.
func DefaultConfig(uri string) Config {
	return Config{
		URI:        uri,
		Database:   "procmap",
		Collection: "layouts",
	}
}

// LayoutStore archives positioned graphs keyed by content hash.
type LayoutStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// layoutDoc is the stored document shape.
type layoutDoc struct {
	Hash      string            `bson:"_id"`
	Layout    layout.Positioned `bson:"layout"`
	CreatedAt time.Time         `bson:"created_at"`
}

// New connects to MongoDB and returns a layout store.
func New(ctx context.Context, cfg Config) (*LayoutStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, procerrors.Wrap(procerrors.ErrCodeStore, err, "connect to %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, procerrors.Wrap(procerrors.ErrCodeStore, err, "ping %s", cfg.URI)
	}
	return &LayoutStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save archives a layout under its graph hash. Saving the same hash twice
// is a no-op upsert, not an error.
func (s *LayoutStore) Save(ctx context.Context, hash string, p layout.Positioned) error {
	if err := procerrors.ValidateHash(hash); err != nil {
		return err
	}
	doc := layoutDoc{Hash: hash, Layout: p, CreatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": hash},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return procerrors.Wrap(procerrors.ErrCodeStore, err, "save layout %s", hash)
	}
	return nil
}

// Get retrieves an archived layout by graph hash.
// Returns ErrCodeLayoutNotFound if no layout is archived under the hash.
func (s *LayoutStore) Get(ctx context.Context, hash string) (layout.Positioned, error) {
	if err := procerrors.ValidateHash(hash); err != nil {
		return layout.Positioned{}, err
	}
	var doc layoutDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": hash}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return layout.Positioned{}, procerrors.New(procerrors.ErrCodeLayoutNotFound, "no layout for hash %s", hash)
	}
	if err != nil {
		return layout.Positioned{}, procerrors.Wrap(procerrors.ErrCodeStore, err, "load layout %s", hash)
	}
	return doc.Layout, nil
}

// Close disconnects from MongoDB.
func (s *LayoutStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
