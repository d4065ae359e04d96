// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	ID string `json:"id"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the minted session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// FavoriteRequest represents the body for add/remove favorite calls.
type FavoriteRequest struct {
	CountryCode string `json:"countryCode"`
}

// FavoritesResponse carries a user's current favorite set.
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}
