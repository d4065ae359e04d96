package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/countryexplorer/countryexplorer/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, favorites, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		pq.Array(user.Favorites),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, favorites, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, favorites, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// AddFavorite appends a country code to the user's favorite set if not
// already present and returns the resulting set. The membership check
// and the append happen in one UPDATE, so concurrent adds for the same
// user cannot lose each other's writes.
func (r *Repository) AddFavorite(ctx context.Context, userID, code string) ([]string, error) {
	query := `
		UPDATE users
		SET favorites = CASE
				WHEN $2 = ANY(favorites) THEN favorites
				ELSE array_append(favorites, $2)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING favorites
	`

	var favorites []string
	err := r.pool.QueryRow(ctx, query, userID, code).Scan(pq.Array(&favorites))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return favorites, nil
}

// RemoveFavorite removes a country code from the user's favorite set
// and returns the resulting set. Removing an absent code is a no-op.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, code string) ([]string, error) {
	query := `
		UPDATE users
		SET favorites = array_remove(favorites, $2),
			updated_at = NOW()
		WHERE id = $1
		RETURNING favorites
	`

	var favorites []string
	err := r.pool.QueryRow(ctx, query, userID, code).Scan(pq.Array(&favorites))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return favorites, nil
}

// GetFavorites returns the user's current favorite set.
func (r *Repository) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT favorites
		FROM users
		WHERE id = $1
	`

	var favorites []string
	err := r.pool.QueryRow(ctx, query, userID).Scan(pq.Array(&favorites))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return favorites, nil
}

// scanUser scans a user row.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var favorites []string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		pq.Array(&favorites),
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Favorites = favorites
	return &user, nil
}

// uniqueViolationCode is the PostgreSQL error code for unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
