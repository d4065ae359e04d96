package model

// Country is a read-only record from the upstream country-data API.
// The server never stores these; favorites reference countries by
// their three-letter alpha code (CCA3) only.
type Country struct {
	Name       CountryName         `json:"name"`
	CCA3       string              `json:"cca3"`
	Capital    []string            `json:"capital,omitempty"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion,omitempty"`
	Population int64               `json:"population"`
	Area       float64             `json:"area"`
	Flags      CountryFlags        `json:"flags"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Borders    []string            `json:"borders,omitempty"`
	Timezones  []string            `json:"timezones,omitempty"`
	IDD        CallingCode         `json:"idd"`
	Continents []string            `json:"continents,omitempty"`
}

// CountryName holds the common and official names of a country.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// CountryFlags holds flag image URLs.
type CountryFlags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Currency describes one currency a country uses.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// CallingCode holds international dialing code components.
type CallingCode struct {
	Root     string   `json:"root,omitempty"`
	Suffixes []string `json:"suffixes,omitempty"`
}
