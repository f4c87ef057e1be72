package review

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository defines persistence for customer reviews.
type Repository interface {
	List(ctx context.Context) ([]bson.M, error)
	Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error)
}

// MongoRepository implements Repository over the review collection.
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

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs []bson.M
}

func NewMemoryRepository() *MemoryRepository { return &MemoryRepository{} }

func (r *MemoryRepository) List(ctx context.Context) ([]bson.M, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]bson.M, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid := primitive.NewObjectID()
	cp := bson.M{"_id": oid.Hex()}
	for k, v := range doc {
		cp[k] = v
	}
	r.docs = append(r.docs, cp)
	return &mongo.InsertOneResult{InsertedID: oid}, nil
}
