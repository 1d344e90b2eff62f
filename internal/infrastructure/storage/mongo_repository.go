package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

// MongoRepository stores each partition as its own collection.
type MongoRepository struct {
	db      *mongo.Database
	logger  *slog.Logger
	mu      sync.Mutex
	indexed map[string]bool
}

var _ ports.RecordStore = (*MongoRepository)(nil)

// ConnectMongo opens a client and verifies the server is reachable.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(database), nil
}

// NewMongoRepository wires a mongo database handle.
func NewMongoRepository(db *mongo.Database, log *slog.Logger) *MongoRepository {
	return &MongoRepository{db: db, logger: log, indexed: map[string]bool{}}
}

// Exists runs the equality query on title and link.
func (r *MongoRepository) Exists(ctx context.Context, partition string, key domain.RecordKey) (bool, error) {
	r.ensureIndex(ctx, partition)

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.db.Collection(partition).FindOne(ctx, bson.M{"title": key.Title, "link": key.Link}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: find in %s: %v", domain.ErrPersistence, partition, err)
	}
	return true, nil
}

// Insert writes a new document; ingestedAt is assigned by the server clock.
func (r *MongoRepository) Insert(ctx context.Context, partition string, record domain.Record) error {
	// Upserting on a fresh _id always inserts, and lets $currentDate stamp the server time.
	update := bson.M{
		"$setOnInsert": recordDocument(record),
		"$currentDate": bson.M{"ingestedAt": true},
	}
	_, err := r.db.Collection(partition).UpdateOne(ctx,
		bson.M{"_id": primitive.NewObjectID()},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: insert into %s: %v", domain.ErrPersistence, partition, err)
	}
	return nil
}

func recordDocument(record domain.Record) bson.M {
	doc := bson.M{
		"title":      record.Title,
		"link":       record.Link,
		"category":   string(record.Category),
		"sourceName": string(record.Source),
	}
	if record.Deadline != nil {
		doc["deadline"] = primitive.NewDateTimeFromTime(*record.Deadline)
	}
	if v := record.Video; v != nil {
		video := bson.M{
			"videoId":     v.VideoID,
			"channel":     v.Channel,
			"channelId":   v.ChannelID,
			"publishedAt": primitive.NewDateTimeFromTime(v.PublishedAt),
		}
		if v.Description != "" {
			video["description"] = v.Description
		}
		if v.Thumbnail != "" {
			video["thumbnail"] = v.Thumbnail
		}
		doc["video"] = video
	}
	return doc
}

// ensureIndex creates a non-unique title+link index once per partition.
// Uniqueness stays a pipeline-level check. A failed attempt is retried on the next call.
func (r *MongoRepository) ensureIndex(ctx context.Context, partition string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexed[partition] {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.db.Collection(partition).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}, {Key: "link", Value: 1}},
	})
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("create title+link index failed", "partition", partition, "error", err)
		}
		return
	}
	r.indexed[partition] = true
}
