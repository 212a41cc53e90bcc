package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store using MongoDB. Each stored paste is a single
// document keyed by its resolved name.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoPaste struct {
	Name      string           `bson:"_id"`
	Content   primitive.Binary `bson:"content"`
	CreatedAt time.Time        `bson:"created_at"`
}

// NewMongoStore creates a new MongoDB storage backend
func NewMongoStore(url, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection("pastes"),
	}, nil
}

func (m *MongoStore) Put(name string, content []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc := mongoPaste{
		Name:      name,
		Content:   primitive.Binary{Data: content},
		CreatedAt: time.Now(),
	}
	// Upsert so a repeated name truncates like the filesystem backend.
	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, opts)
	return err
}

func (m *MongoStore) Get(name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc mongoPaste
	if err := m.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Content.Data, nil
}

func (m *MongoStore) Exists(name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := m.collection.FindOne(ctx, bson.M{"_id": name},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
