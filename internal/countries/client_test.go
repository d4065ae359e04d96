package countries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleCatalog = `[
	{
		"name": {"common": "France", "official": "French Republic"},
		"cca3": "FRA",
		"capital": ["Paris"],
		"region": "Europe",
		"subregion": "Western Europe",
		"population": 67391582,
		"languages": {"fra": "French"},
		"flags": {"png": "https://flagcdn.com/w320/fr.png"}
	},
	{
		"name": {"common": "Japan", "official": "Japan"},
		"cca3": "JPN",
		"capital": ["Tokyo"],
		"region": "Asia",
		"subregion": "Eastern Asia",
		"population": 125836021,
		"languages": {"jpn": "Japanese"},
		"flags": {"png": "https://flagcdn.com/w320/jp.png"}
	}
]`

func TestClient_All(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all" {
			t.Errorf("expected path /all, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("fields") == "" {
			t.Error("expected fields query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(list))
	}
	if list[0].CCA3 != "FRA" || list[1].CCA3 != "JPN" {
		t.Errorf("unexpected codes: %s, %s", list[0].CCA3, list[1].CCA3)
	}
	if list[0].Name.Common != "France" {
		t.Errorf("expected France, got %s", list[0].Name.Common)
	}
}

func TestClient_ByCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alpha/FRA" {
			t.Errorf("expected path /alpha/FRA, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":{"common":"France"},"cca3":"FRA"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	country, err := client.ByCode(context.Background(), "FRA")
	if err != nil {
		t.Fatalf("ByCode: %v", err)
	}
	if country.CCA3 != "FRA" {
		t.Errorf("expected FRA, got %s", country.CCA3)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.All(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.All(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", client.baseURL)
	}
}
