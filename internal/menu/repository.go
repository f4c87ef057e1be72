package menu

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidID marks a path parameter that is not a valid ObjectID hex string.
var ErrInvalidID = errors.New("invalid id")

// Repository defines persistence for menu items. Items are schemaless
// documents; whatever the admin submits is stored as-is.
type Repository interface {
	List(ctx context.Context) ([]bson.M, error)
	Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error)
	DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error)
	SetImageKey(ctx context.Context, id, key string) (*mongo.UpdateResult, error)
}

// MongoRepository implements Repository over the menu collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, doc)
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.col.DeleteOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) SetImageKey(ctx context.Context, id, key string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"imageKey": key}})
}
