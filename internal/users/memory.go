package users

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-services/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests. It mirrors
// the Mongo repository's observable behavior, including the native
// driver result structs.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]bson.M // hex id -> document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[string]bson.M{}}
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

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, d := range r.docs {
		if e, _ := d["email"].(string); e == email {
			u := &models.User{ID: id, Email: email}
			u.Name, _ = d["name"].(string)
			u.Role, _ = d["role"].(string)
			return u, nil
		}
	}
	return nil, nil
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

func (r *MemoryRepository) SetAdminRole(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	d["role"] = models.RoleAdmin
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
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
