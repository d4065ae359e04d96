package explorer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/countryexplorer/countryexplorer/internal/model"
)

// DescribeCountry renders a single country's detail view as text. It
// covers the full record: names, geography, demographics, languages,
// currencies, time zones, calling code, borders and flag URL. Missing
// data renders as "n/a" rather than being omitted.
func DescribeCountry(country model.Country, favorite bool) string {
	var b strings.Builder

	title := country.Name.Common
	if favorite {
		title += " *"
	}
	fmt.Fprintf(&b, "%s (%s)\n", title, country.CCA3)
	fmt.Fprintf(&b, "Official name: %s\n", orNA(country.Name.Official))
	fmt.Fprintf(&b, "Capital:       %s\n", orNA(first(country.Capital)))
	fmt.Fprintf(&b, "Region:        %s\n", joinNonEmpty(country.Region, country.Subregion))
	fmt.Fprintf(&b, "Continents:    %s\n", orNA(strings.Join(country.Continents, ", ")))
	fmt.Fprintf(&b, "Population:    %d\n", country.Population)
	fmt.Fprintf(&b, "Area:          %.0f km2\n", country.Area)
	fmt.Fprintf(&b, "Languages:     %s\n", orNA(strings.Join(sortedValues(country.Languages), ", ")))
	fmt.Fprintf(&b, "Currencies:    %s\n", orNA(strings.Join(currencyList(country.Currencies), ", ")))
	fmt.Fprintf(&b, "Calling code:  %s\n", orNA(callingCode(country.IDD)))
	fmt.Fprintf(&b, "Time zones:    %s\n", orNA(strings.Join(country.Timezones, ", ")))
	fmt.Fprintf(&b, "Borders:       %s\n", orNA(strings.Join(country.Borders, ", ")))
	fmt.Fprintf(&b, "Flag:          %s\n", orNA(flagURL(country.Flags)))

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return orNA(strings.Join(kept, " / "))
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// currencyList renders currencies as "Name (Symbol)", symbol omitted
// when the upstream record has none.
func currencyList(currencies map[string]model.Currency) []string {
	out := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c.Symbol != "" {
			out = append(out, fmt.Sprintf("%s (%s)", c.Name, c.Symbol))
		} else {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}

// callingCode joins the IDD root with the first suffix, mirroring how
// the upstream API splits dialing codes.
func callingCode(idd model.CallingCode) string {
	if idd.Root == "" {
		return ""
	}
	if len(idd.Suffixes) == 0 {
		return idd.Root
	}
	return idd.Root + idd.Suffixes[0]
}

func flagURL(flags model.CountryFlags) string {
	if flags.SVG != "" {
		return flags.SVG
	}
	return flags.PNG
}
