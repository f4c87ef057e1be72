package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-services/internal/models"
)

// Service encapsulates account business logic on top of a Repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// CreateIfAbsent inserts the supplied account document unless one with
// the same email already exists. The second return value reports
// whether the account was already present (in which case no write
// happens and the result is nil).
func (s *Service) CreateIfAbsent(ctx context.Context, doc bson.M) (*mongo.InsertOneResult, bool, error) {
	email, _ := doc["email"].(string)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return nil, true, nil
	}
	res, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, false, err
	}
	return res, false, nil
}

// IsAdmin reports whether the account with the given email holds the
// admin role. An unknown email is not an error; it simply is not admin.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

// List returns all account documents.
func (s *Service) List(ctx context.Context) ([]bson.M, error) {
	return s.repo.List(ctx)
}

// FindByEmail returns the account for email, nil when absent.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// PromoteToAdmin sets role=admin on the account with the given id.
// This is the only writer of the role attribute.
func (s *Service) PromoteToAdmin(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	return s.repo.SetAdminRole(ctx, id)
}

// Delete removes the account with the given id.
func (s *Service) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	return s.repo.DeleteByID(ctx, id)
}
