package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/models"
)

// DocUserStorage keeps user accounts in the document store's users
// collection. Lookups scan the collection; at household scale that is a
// handful of records.
type DocUserStorage struct {
	store docstore.Store
}

var _ UserStorage = (*DocUserStorage)(nil)

// NewDocUserStorage creates user storage over the given document store.
func NewDocUserStorage(store docstore.Store) *DocUserStorage {
	return &DocUserStorage{store: store}
}

// CreateUser persists a new user document. The stable user id travels in
// the body under "userId" since document ids are store-assigned.
func (s *DocUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	fields, err := models.ToDoc(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	fields["userId"] = user.ID

	if _, err := s.store.Create(ctx, docstore.Users, fields); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// GetUserByEmail finds a user by email, case-insensitively.
func (s *DocUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %s", email)
}

// GetUserByID finds a user by their stable id.
func (s *DocUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %s", id)
}

func (s *DocUserStorage) list(ctx context.Context) ([]*models.User, error) {
	docs, err := s.store.List(ctx, docstore.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		body, err := json.Marshal(doc)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(body, &u); err != nil {
			continue
		}
		if id, ok := doc["userId"].(string); ok && id != "" {
			u.ID = id
		} else {
			u.ID = doc.ID()
		}
		users = append(users, &u)
	}
	return users, nil
}
