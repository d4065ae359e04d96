// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/countryexplorer/countryexplorer/internal/model"
)

// UserStore is the persistence surface the services need. Implemented
// by *repository.Repository; tests substitute an in-memory store.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// AddFavorite and RemoveFavorite are atomic at the storage layer:
	// the membership check and the mutation happen in one operation.
	AddFavorite(ctx context.Context, userID, code string) ([]string, error)
	RemoveFavorite(ctx context.Context, userID, code string) ([]string, error)
	GetFavorites(ctx context.Context, userID string) ([]string, error)
}
