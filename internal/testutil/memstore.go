package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/countryexplorer/countryexplorer/internal/model"
	"github.com/countryexplorer/countryexplorer/internal/repository"
)

// MemStore is an in-memory user store for unit tests. It returns the
// same sentinel errors as the repository package and performs favorite
// mutations atomically under a mutex, matching the SQL layer's
// single-statement semantics.
type MemStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by ID
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{users: make(map[string]*model.User)}
}

// CreateUser inserts a user, enforcing username uniqueness.
func (s *MemStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	s.users[user.ID] = cloneUser(user)
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *MemStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetUserByUsername retrieves a user by username.
func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// AddFavorite appends a code if absent and returns the resulting set.
func (s *MemStore) AddFavorite(ctx context.Context, userID, code string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	if !user.HasFavorite(code) {
		user.Favorites = append(user.Favorites, code)
	}
	return slices.Clone(user.Favorites), nil
}

// RemoveFavorite removes a code if present and returns the resulting set.
func (s *MemStore) RemoveFavorite(ctx context.Context, userID, code string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	user.Favorites = slices.DeleteFunc(user.Favorites, func(c string) bool {
		return c == code
	})
	return slices.Clone(user.Favorites), nil
}

// GetFavorites returns the user's favorite set.
func (s *MemStore) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return slices.Clone(user.Favorites), nil
}

// DeleteUser removes a user. Used to simulate a record vanishing
// between token issuance and a favorites call.
func (s *MemStore) DeleteUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	return &c
}
