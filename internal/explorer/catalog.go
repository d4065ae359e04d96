package explorer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/countryexplorer/countryexplorer/internal/model"
)

// SortOrder controls the catalog name sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query narrows and orders the catalog view. Zero value means the full
// catalog in ascending name order.
type Query struct {
	// Search matches case-insensitively against the common name.
	Search string
	// Region keeps only countries in the named region.
	Region string
	// Language keeps only countries listing the named language.
	Language string
	Sort     SortOrder
}

// CatalogSource provides the full country list.
type CatalogSource interface {
	All(ctx context.Context) ([]model.Country, error)
}

// FavoritesSource provides the user's favorite codes.
type FavoritesSource interface {
	Favorites(ctx context.Context) ([]string, error)
}

// Catalog is the loaded country view: the full list plus the user's
// favorite set resolved against it.
type Catalog struct {
	countries []model.Country
	favorites map[string]bool
}

// LoadCatalog fetches the country list and the favorite set
// concurrently. Both fetches must succeed; either failure is the
// failure of the whole load. Pass a nil favorites source for an
// anonymous session.
func LoadCatalog(ctx context.Context, countries CatalogSource, favorites FavoritesSource) (*Catalog, error) {
	var (
		list  []model.Country
		codes []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = countries.All(ctx)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		return nil
	})
	if favorites != nil {
		g.Go(func() error {
			var err error
			codes, err = favorites.Favorites(ctx)
			if err != nil {
				return fmt.Errorf("loading favorites: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fav := make(map[string]bool, len(codes))
	for _, code := range codes {
		fav[code] = true
	}
	return &Catalog{countries: list, favorites: fav}, nil
}

// Countries returns the view narrowed by q, sorted by common name.
func (c *Catalog) Countries(q Query) []model.Country {
	out := make([]model.Country, 0, len(c.countries))
	search := strings.ToLower(q.Search)

	for _, country := range c.countries {
		if search != "" && !strings.Contains(strings.ToLower(country.Name.Common), search) {
			continue
		}
		if q.Region != "" && country.Region != q.Region {
			continue
		}
		if q.Language != "" && !hasLanguage(country, q.Language) {
			continue
		}
		out = append(out, country)
	}

	sort.Slice(out, func(i, j int) bool {
		if q.Sort == SortDesc {
			return out[i].Name.Common > out[j].Name.Common
		}
		return out[i].Name.Common < out[j].Name.Common
	})
	return out
}

// Favorites resolves the favorite code set to full records, in
// ascending name order. Codes with no catalog entry are skipped.
func (c *Catalog) Favorites() []model.Country {
	out := make([]model.Country, 0, len(c.favorites))
	for _, country := range c.countries {
		if c.favorites[country.CCA3] {
			out = append(out, country)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Common < out[j].Name.Common
	})
	return out
}

// IsFavorite reports whether code is in the favorite set.
func (c *Catalog) IsFavorite(code string) bool {
	return c.favorites[code]
}

// Regions returns the distinct regions in the catalog, sorted.
func (c *Catalog) Regions() []string {
	return distinct(c.countries, func(country model.Country) []string {
		if country.Region == "" {
			return nil
		}
		return []string{country.Region}
	})
}

// Languages returns the distinct languages in the catalog, sorted.
func (c *Catalog) Languages() []string {
	return distinct(c.countries, func(country model.Country) []string {
		langs := make([]string, 0, len(country.Languages))
		for _, name := range country.Languages {
			langs = append(langs, name)
		}
		return langs
	})
}

func hasLanguage(country model.Country, language string) bool {
	for _, name := range country.Languages {
		if strings.EqualFold(name, language) {
			return true
		}
	}
	return false
}

func distinct(countries []model.Country, extract func(model.Country) []string) []string {
	seen := make(map[string]bool)
	for _, country := range countries {
		for _, value := range extract(country) {
			seen[value] = true
		}
	}
	out := make([]string, 0, len(seen))
	for value := range seen {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
