package menu

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]bson.M
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[string]bson.M{}}
}

// Len reports the number of stored items (test helper).
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

func (r *MemoryRepository) List(ctx context.Context) ([]bson.M, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []bson.M{}
	for id, d := range r.docs {
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

func (r *MemoryRepository) SetImageKey(ctx context.Context, id, key string) (*mongo.UpdateResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	d["imageKey"] = key
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
