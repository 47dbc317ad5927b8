package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

type collection[T any] struct {
	c         *mongo.Collection
	entity    string
	schema    query.Schema
	duplicate func(*T) error
}

func (c *collection[T]) notFound(id string) func() error {
	return func() error { return apperror.NotFound("%s not found with id of %s", c.entity, id) }
}

func (c *collection[T]) dup(item *T) func() error {
	if c.duplicate == nil || item == nil {
		return nil
	}
	return func() error { return c.duplicate(item) }
}

func (c *collection[T]) insert(ctx context.Context, item *T) error {
	_, err := c.c.InsertOne(ctx, item)
	return handleMongoError(err, nil, c.dup(item))
}

func (c *collection[T]) getBy(ctx context.Context, filter bson.M, notFound func() error) (*T, error) {
	var out T
	if err := c.c.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, handleMongoError(err, notFound, nil)
	}
	return &out, nil
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	return c.getBy(ctx, bson.M{"_id": id}, c.notFound(id))
}

func (c *collection[T]) replace(ctx context.Context, id string, item *T) error {
	res, err := c.c.ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		return handleMongoError(err, c.notFound(id), c.dup(item))
	}
	if res.MatchedCount == 0 {
		return c.notFound(id)()
	}
	return nil
}

func (c *collection[T]) set(ctx context.Context, id string, fields bson.M) error {
	res, err := c.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return handleMongoError(err, c.notFound(id), nil)
	}
	if res.MatchedCount == 0 {
		return c.notFound(id)()
	}
	return nil
}

func (c *collection[T]) remove(ctx context.Context, id string) error {
	res, err := c.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return handleMongoError(err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return c.notFound(id)()
	}
	return nil
}

func (c *collection[T]) removeWhere(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, handleMongoError(err, nil, nil)
	}
	return res.DeletedCount, nil
}

func (c *collection[T]) find(ctx context.Context, q query.Query) ([]T, error) {
	opts := options.Find().SetSort(sortDoc(c.schema, q.Sort))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return c.findRaw(ctx, toBSON(c.schema, q.Filter), opts)
}

func (c *collection[T]) findRaw(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, handleMongoError(err, nil, nil)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, handleMongoError(err, nil, nil)
	}
	return out, nil
}

func (c *collection[T]) count(ctx context.Context, f query.Filter) (int64, error) {
	n, err := c.c.CountDocuments(ctx, toBSON(c.schema, f))
	if err != nil {
		return 0, handleMongoError(err, nil, nil)
	}
	return n, nil
}

// avg returns the mean of field over documents matching filter, 0 for none.
func (c *collection[T]) avg(ctx context.Context, field string, filter bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$" + field}}},
		}}},
	}
	cur, err := c.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, handleMongoError(err, nil, nil)
	}
	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, handleMongoError(err, nil, nil)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}
