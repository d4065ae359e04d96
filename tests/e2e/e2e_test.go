//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// TestE2ESmoke exercises the full register/login/favorites flow against
// a running server. Requires EXPLORER_BASE_URL (defaults to
// http://localhost:8080) and a backing Postgres/Redis.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("EXPLORER_BASE_URL", "http://localhost:8080")
	client := &http.Client{Timeout: 10 * time.Second}

	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	password := "e2e-password"

	// Register
	status, body := postJSON(t, client, baseURL+"/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", status, body)
	}

	// Duplicate registration conflicts
	status, _ = postJSON(t, client, baseURL+"/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", status)
	}

	// Login
	status, body = postJSON(t, client, baseURL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", status, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.Token == "" {
		t.Fatalf("login: no token in %s", body)
	}

	// Favorites start empty
	if got := listFavorites(t, client, baseURL, login.Token); len(got) != 0 {
		t.Fatalf("expected empty favorites, got %v", got)
	}

	// Add twice is idempotent
	for i := 0; i < 2; i++ {
		status, body = postJSON(t, client, baseURL+"/api/favorites/add", login.Token,
			map[string]string{"countryCode": "JPN"})
		if status != http.StatusOK {
			t.Fatalf("add %d: expected 200, got %d: %s", i+1, status, body)
		}
	}
	if got := listFavorites(t, client, baseURL, login.Token); len(got) != 1 || got[0] != "JPN" {
		t.Fatalf("expected [JPN], got %v", got)
	}

	// Remove, then remove again as a no-op
	for i := 0; i < 2; i++ {
		status, body = postJSON(t, client, baseURL+"/api/favorites/remove", login.Token,
			map[string]string{"countryCode": "JPN"})
		if status != http.StatusOK {
			t.Fatalf("remove %d: expected 200, got %d: %s", i+1, status, body)
		}
	}
	if got := listFavorites(t, client, baseURL, login.Token); len(got) != 0 {
		t.Fatalf("expected empty favorites after remove, got %v", got)
	}

	// Unauthenticated access is rejected
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/favorites", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unauthenticated request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any) (int, []byte) {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func listFavorites(t *testing.T, client *http.Client, baseURL, token string) []string {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/favorites", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET favorites: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET favorites: expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Favorites []string `json:"favorites"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	return body.Favorites
}
