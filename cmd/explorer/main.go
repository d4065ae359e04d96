// Package main is the terminal client for the country explorer.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/countryexplorer/countryexplorer/internal/countries"
	"github.com/countryexplorer/countryexplorer/internal/explorer"
	"github.com/countryexplorer/countryexplorer/internal/model"
)

const usage = `usage: explorer <command> [flags]

commands:
  register              create an account
  login                 log in and save the session
  logout                clear the saved session
  whoami                show the current session
  countries             browse the country catalog
  show <code>           show one country in full detail
  favorites             list favorite countries
  favorite <code>       add a country to favorites
  unfavorite <code>     remove a country from favorites

environment:
  EXPLORER_API_URL        backend base URL (default http://localhost:8080)
  EXPLORER_TOKEN_FILE     session token path (default under the user config dir)
  COUNTRIES_API_URL       upstream country-data base URL
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	session *explorer.Session
	api     *explorer.APIClient
	catalog *countries.Client
}

func newApp() (*app, error) {
	store, err := explorer.NewFileTokenStore(os.Getenv("EXPLORER_TOKEN_FILE"))
	if err != nil {
		return nil, err
	}

	session := explorer.NewSession(store)
	result, err := session.Rehydrate()
	if err != nil {
		return nil, err
	}
	if result.Cleared {
		fmt.Fprintln(os.Stderr, "stored session was corrupt and has been cleared")
	}

	apiURL := os.Getenv("EXPLORER_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	return &app{
		session: session,
		api:     explorer.NewAPIClient(apiURL, session),
		catalog: countries.NewClient(os.Getenv("COUNTRIES_API_URL")),
	}, nil
}

func run(command string, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch command {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "countries":
		return a.countries(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "favorites":
		return a.favorites(ctx)
	case "favorite":
		return a.mutateFavorite(ctx, args, a.api.AddFavorite)
	case "unfavorite":
		return a.mutateFavorite(ctx, args, a.api.RemoveFavorite)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context) error {
	username, password, err := promptCredentials()
	if err != nil {
		return err
	}

	id, err := a.api.Register(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Println("registered user", id)
	return nil
}

func (a *app) login(ctx context.Context) error {
	username, password, err := promptCredentials()
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.session.Login(token); err != nil {
		return err
	}
	fmt.Println("logged in as", a.session.UserID())
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) whoami() error {
	if a.session.State() != explorer.Authenticated {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Println("logged in as", a.session.UserID())
	return nil
}

func (a *app) countries(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("countries", flag.ExitOnError)
	search := fs.String("search", "", "filter by name substring")
	region := fs.String("region", "", "filter by region")
	language := fs.String("language", "", "filter by language")
	sortOrder := fs.String("sort", "asc", "name sort order: asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Favorites are only loaded for an authenticated session; the
	// catalog itself is public.
	var favSource explorer.FavoritesSource
	if a.session.State() == explorer.Authenticated {
		favSource = a.api
	}

	catalog, err := a.loadCatalog(ctx, favSource)
	if err != nil {
		return err
	}

	query := explorer.Query{
		Search:   *search,
		Region:   *region,
		Language: *language,
		Sort:     explorer.SortOrder(*sortOrder),
	}
	for _, country := range catalog.Countries(query) {
		printCountry(country, catalog.IsFavorite(country.CCA3))
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one country code")
	}
	code := strings.ToUpper(args[0])

	country, err := a.catalog.ByCode(ctx, code)
	if err != nil {
		return err
	}

	favorite := false
	if a.session.State() == explorer.Authenticated {
		favorites, err := a.api.Favorites(ctx)
		if err != nil {
			return a.mapSessionError(err)
		}
		favorite = slices.Contains(favorites, country.CCA3)
	}

	fmt.Print(explorer.DescribeCountry(*country, favorite))
	return nil
}

func (a *app) favorites(ctx context.Context) error {
	catalog, err := a.loadCatalog(ctx, a.api)
	if err != nil {
		return err
	}

	favorites := catalog.Favorites()
	if len(favorites) == 0 {
		fmt.Println("no favorites yet")
		return nil
	}
	for _, country := range favorites {
		printCountry(country, true)
	}
	return nil
}

func (a *app) mutateFavorite(ctx context.Context, args []string, op func(context.Context, string) ([]string, error)) error {
	if len(args) != 1 {
		return errors.New("expected exactly one country code")
	}

	favorites, err := op(ctx, strings.ToUpper(args[0]))
	if err != nil {
		return a.mapSessionError(err)
	}
	fmt.Println("favorites:", strings.Join(favorites, ", "))
	return nil
}

func (a *app) loadCatalog(ctx context.Context, favSource explorer.FavoritesSource) (*explorer.Catalog, error) {
	catalog, err := explorer.LoadCatalog(ctx, a.catalog, favSource)
	if err != nil {
		return nil, a.mapSessionError(err)
	}
	return catalog, nil
}

// mapSessionError drops the session when the server no longer accepts
// its token.
func (a *app) mapSessionError(err error) error {
	if errors.Is(err, explorer.ErrUnauthenticated) {
		if logoutErr := a.session.Logout(); logoutErr != nil {
			return logoutErr
		}
		return errors.New("session expired, please log in again")
	}
	return err
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	fmt.Print("password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	return username, string(password), nil
}

func printCountry(country model.Country, favorite bool) {
	marker := " "
	if favorite {
		marker = "*"
	}
	capital := ""
	if len(country.Capital) > 0 {
		capital = country.Capital[0]
	}
	fmt.Printf("%s %s  %-36s %-16s %-20s pop %d\n",
		marker, country.CCA3, country.Name.Common, country.Region, capital, country.Population)
}
