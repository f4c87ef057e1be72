package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidID marks a path parameter that is not a valid ObjectID hex string.
var ErrInvalidID = errors.New("invalid id")

// Repository defines persistence for cart entries. Entries carry an
// owning email used for scoping; everything else is schemaless.
type Repository interface {
	ListByEmail(ctx context.Context, email string) ([]bson.M, error)
	Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error)
	DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error)
}

// MongoRepository implements Repository over the cart collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]bson.M, error) {
	cur, err := r.col.Find(ctx, bson.M{"email": email})
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

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]bson.M
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[string]bson.M{}}
}

func (r *MemoryRepository) ListByEmail(ctx context.Context, email string) ([]bson.M, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []bson.M{}
	for id, d := range r.docs {
		if e, _ := d["email"].(string); e != email {
			continue
		}
		cp := bson.M{"_id": id}
		for k, v := range d {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid := primitive.NewObjectID()
	cp := bson.M{}
	for k, v := range doc {
		cp[k] = v
	}
	r.docs[oid.Hex()] = cp
	return &mongo.InsertOneResult{InsertedID: oid}, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return &mongo.DeleteResult{DeletedCount: 0}, nil
	}
	delete(r.docs, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}
