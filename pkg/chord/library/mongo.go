package library

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "chordview"
	DefaultMongoCollection = "chords"
	defaultMongoTimeout    = 10 * time.Second
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string        // default "chordview"
	Collection string        // default "chords"
	Timeout    time.Duration // connect and ping timeout, default 10s
}

// MongoStore keeps chords in a MongoDB collection, one document per chord,
// with a unique index on the normalized name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoChord struct {
	Key     string `bson:"key"`
	Name    string `bson:"name"`
	Frets   []int  `bson:"frets"`
	Fingers []int  `bson:"fingers,omitempty"`
}

// NewMongoStore connects to MongoDB and ensures the name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMongoTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create mongo index")
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*chord.Chord, error) {
	var doc mongoChord
	err := s.coll.FindOne(ctx, bson.M{"key": normalize(name)}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeChordNotFound, "chord %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find chord %q", name)
	}
	return doc.chord(), nil
}

func (s *MongoStore) List(ctx context.Context) ([]*chord.Chord, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list chords")
	}
	var docs []mongoChord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode chords")
	}
	out := make([]*chord.Chord, len(docs))
	for i := range docs {
		out[i] = docs[i].chord()
	}
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, c *chord.Chord) error {
	if err := validateForStore(c); err != nil {
		return err
	}
	doc := mongoChord{Key: normalize(c.Name), Name: c.Name, Frets: c.Frets, Fingers: c.Fingers}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"key": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store chord %q", c.Name)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"key": normalize(name)}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete chord %q", name)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultMongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (d mongoChord) chord() *chord.Chord {
	return &chord.Chord{Name: d.Name, Frets: d.Frets, Fingers: d.Fingers}
}

var _ Store = (*MongoStore)(nil)
