// Package mongodb is the document store driver. Entities are stored with
// their bson tags; string UUIDs are the _id of every collection.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

const (
	usersCollection     = "users"
	bootcampsCollection = "bootcamps"
	coursesCollection   = "courses"
	reviewsCollection   = "reviews"
)

// Connect opens a client and retries the first ping until the server answers.
func Connect(ctx context.Context, uri string, logger *logrus.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Minute
	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pctx, nil)
	}
	notify := func(err error, d time.Duration) {
		logger.WithError(err).Warnf("waiting for mongodb, retrying in %s", d)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to mongodb")
	return client, nil
}

// EnsureIndexes creates the unique and geo indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "resetPasswordToken", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		bootcampsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		coursesCollection: {
			{Keys: bson.D{{Key: "bootcamp", Value: 1}}},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// NewStore wires every repository onto one database. Close disconnects the
// client.
func NewStore(client *mongo.Client, dbName string) repository.Store {
	db := client.Database(dbName)
	return repository.Store{
		Users:     NewUserRepository(db),
		Bootcamps: NewBootcampRepository(db),
		Courses:   NewCourseRepository(db),
		Reviews:   NewReviewRepository(db),
		Close:     client.Disconnect,
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
