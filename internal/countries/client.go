// Package countries provides a client for the REST Countries upstream API.
package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/countryexplorer/countryexplorer/internal/model"
)

// ErrUpstreamUnavailable indicates the countries API could not be reached
// or returned an unexpected status.
var ErrUpstreamUnavailable = errors.New("countries upstream unavailable")

const (
	// DefaultBaseURL is the public REST Countries endpoint.
	DefaultBaseURL = "https://restcountries.com/v3.1"

	// clientTimeout is the total request timeout.
	clientTimeout = 30 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 10 * time.Second
	// responseHeaderTimeout is time to wait for response headers.
	responseHeaderTimeout = 15 * time.Second
)

// listFields limits the upstream payload to the fields the catalog renders.
var listFields = []string{
	"name", "cca3", "capital", "region", "subregion", "population",
	"area", "flags", "languages", "currencies", "borders",
	"timezones", "idd", "continents",
}

// Client fetches country data from the REST Countries API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a countries client. baseURL may be empty, in which
// case DefaultBaseURL is used.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// All fetches the full country catalog.
func (c *Client) All(ctx context.Context) ([]model.Country, error) {
	endpoint := fmt.Sprintf("%s/all?fields=%s", c.baseURL, fieldsParam())
	return c.fetch(ctx, endpoint)
}

// ByCode fetches a single country by its three-letter code.
func (c *Client) ByCode(ctx context.Context, code string) (*model.Country, error) {
	endpoint := fmt.Sprintf("%s/alpha/%s", c.baseURL, url.PathEscape(code))
	list, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("country %s: %w", code, ErrUpstreamUnavailable)
	}
	return &list[0], nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]model.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CountryExplorer/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching countries: %w", errors.Join(ErrUpstreamUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d: %w", resp.StatusCode, ErrUpstreamUnavailable)
	}

	var list []model.Country
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding countries: %w", errors.Join(ErrUpstreamUnavailable, err))
	}
	return list, nil
}

// fieldsParam renders the field list as the comma-separated value
// restcountries expects.
func fieldsParam() string {
	return strings.Join(listFields, ",")
}
