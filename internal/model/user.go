// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// User represents a registered account and its favorite country codes.
// PasswordHash holds an Argon2id hash in PHC string format, never the
// plain password.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasFavorite reports whether the given country code is in the user's
// favorite set.
func (u *User) HasFavorite(code string) bool {
	return slices.Contains(u.Favorites, code)
}
