package users

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-services/internal/models"
)

// ErrInvalidID marks a path parameter that is not a valid ObjectID hex string.
var ErrInvalidID = errors.New("invalid id")

// Repository defines persistence operations for user accounts.
// Write bodies are schemaless (bson.M) and stored as supplied; only the
// email attribute is interpreted by this service.
type Repository interface {
	List(ctx context.Context) ([]bson.M, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error)
	SetAdminRole(ctx context.Context, id string) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

// MongoRepository implements Repository using the user collection.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a repository for the given collection.
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

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, doc)
}

func (r *MongoRepository) SetAdminRole(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	return r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.col.DeleteOne(ctx, bson.M{"_id": oid})
}
