package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/countryexplorer/countryexplorer/internal/metrics"
	"github.com/countryexplorer/countryexplorer/internal/repository"
)

// Favorites service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCountryCode = errors.New("invalid country code")
)

// Country codes are three-letter alpha codes (cca3), e.g. "USA".
var countryCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// FavoritesService maintains each user's favorite country set.
// Callers are expected to have passed the auth gate; the user ID comes
// from a verified token.
type FavoritesService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(store UserStore, recorder metrics.Recorder) *FavoritesService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FavoritesService{
		store:   store,
		metrics: recorder,
	}
}

// Add puts a country code into the user's favorite set and returns the
// resulting set. Idempotent: adding a code twice leaves the set
// unchanged and returns no error.
func (s *FavoritesService) Add(ctx context.Context, userID, code string) ([]string, error) {
	if !countryCodeRegex.MatchString(code) {
		return nil, ErrInvalidCountryCode
	}

	favorites, err := s.store.AddFavorite(ctx, userID, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	s.metrics.IncFavoriteAdded()

	return favorites, nil
}

// Remove deletes a country code from the user's favorite set and
// returns the resulting set. Removing an absent code is a no-op, not
// an error.
func (s *FavoritesService) Remove(ctx context.Context, userID, code string) ([]string, error) {
	if !countryCodeRegex.MatchString(code) {
		return nil, ErrInvalidCountryCode
	}

	favorites, err := s.store.RemoveFavorite(ctx, userID, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("remove favorite: %w", err)
	}

	s.metrics.IncFavoriteRemoved()

	return favorites, nil
}

// List returns the user's current favorite set.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]string, error) {
	favorites, err := s.store.GetFavorites(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, nil
}
