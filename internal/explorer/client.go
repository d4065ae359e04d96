package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthenticated indicates the server rejected the session token.
// The caller should drop the session back to Anonymous.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError carries the server's error envelope for non-401 failures.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// APIClient talks to the country explorer backend.
type APIClient struct {
	baseURL string
	session *Session
	http    *http.Client
}

// NewAPIClient creates a client for the backend at baseURL. The session
// supplies the bearer token for authenticated endpoints.
func NewAPIClient(baseURL string, session *Session) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates an account and returns the new user id.
func (c *APIClient) Register(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, false, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Login exchanges credentials for a session token.
func (c *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Favorites returns the current favorite set.
func (c *APIClient) Favorites(ctx context.Context) ([]string, error) {
	var resp struct {
		Favorites []string `json:"favorites"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/favorites", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// AddFavorite adds a country code and returns the updated set.
func (c *APIClient) AddFavorite(ctx context.Context, code string) ([]string, error) {
	return c.mutateFavorites(ctx, "/api/favorites/add", code)
}

// RemoveFavorite removes a country code and returns the updated set.
func (c *APIClient) RemoveFavorite(ctx context.Context, code string) ([]string, error) {
	return c.mutateFavorites(ctx, "/api/favorites/remove", code)
}

func (c *APIClient) mutateFavorites(ctx context.Context, path, code string) ([]string, error) {
	var resp struct {
		Favorites []string `json:"favorites"`
	}
	body := map[string]string{"countryCode": code}
	if err := c.do(ctx, http.MethodPost, path, body, true, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.session.Token()
		if token == "" {
			return ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	// A 401 on an authenticated call means the session token was
	// rejected. On open endpoints (login) a 401 carries a server
	// message worth surfacing, so it stays an APIError.
	if resp.StatusCode == http.StatusUnauthorized && authed {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
	}
}
