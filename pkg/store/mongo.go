package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/panforge/panlayout/pkg/errors"
)

// Mongo defaults.
const (
	DefaultDatabase = "panlayout"
	CollectionName  = "instruments"
	mongoTimeout    = 10 * time.Second
)

// MongoOptions configures a MongoStore connection.
type MongoOptions struct {
	URI      string
	Database string // default "panlayout"
}

// MongoStore stores instruments in the "instruments" collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// instrumentDoc is the BSON shape of an instrument; the ID is the document _id.
type instrumentDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Layout    string    `bson:"layout"`
	Mode      string    `bson:"mode"`
	Notes     int       `bson:"notes"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(inst *Instrument) instrumentDoc {
	return instrumentDoc{
		ID:        inst.ID,
		Name:      inst.Name,
		Layout:    inst.Layout,
		Mode:      inst.Mode,
		Notes:     inst.Notes,
		CreatedAt: inst.CreatedAt,
	}
}

func (d instrumentDoc) instrument() *Instrument {
	return &Instrument{
		ID:        d.ID,
		Name:      d.Name,
		Layout:    d.Layout,
		Mode:      d.Mode,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	return NewMongoStoreFromClient(client, opts.Database), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}
}

func (s *MongoStore) Save(ctx context.Context, inst *Instrument) error {
	if err := prepare(inst); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": inst.ID}, toDoc(inst), options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save instrument")
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Instrument, error) {
	var doc instrumentDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get instrument")
	}
	return doc.instrument(), nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Instrument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list instruments")
	}
	var docs []instrumentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode instruments")
	}
	out := make([]*Instrument, len(docs))
	for i, d := range docs {
		out[i] = d.instrument()
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete instrument")
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
