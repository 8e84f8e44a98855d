package ephemeris

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Place is a resolved birth location.
type Place struct {
	City      string  `toml:"city" json:"city"`
	Country   string  `toml:"country" json:"country"`
	Latitude  float64 `toml:"latitude" json:"latitude"`
	Longitude float64 `toml:"longitude" json:"longitude"`
	Timezone  string  `toml:"timezone" json:"timezone"`
}

// Label formats the place as "City, Country".
func (p Place) Label() string {
	return p.City + ", " + p.Country
}

type gazetteerFile struct {
	Places []Place `toml:"place"`
}

// Gazetteer resolves city and country names against a fixed list of places.
// Matching ignores case, diacritics, and surrounding whitespace, so
// "sao paulo" finds "São Paulo".
type Gazetteer struct {
	Path   string
	places []Place
	index  map[string]int
}

// LoadGazetteer reads a gazetteer file.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gazetteer: %w", err)
	}
	g, err := ParseGazetteer(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	g.Path = path
	return g, nil
}

// ParseGazetteer decodes gazetteer TOML. Later duplicates of the same
// city and country are ignored.
func ParseGazetteer(data []byte) (*Gazetteer, error) {
	var f gazetteerFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	g := &Gazetteer{places: f.Places, index: make(map[string]int, len(f.Places))}
	for i, p := range f.Places {
		k := placeKey(p.City, p.Country)
		if _, dup := g.index[k]; !dup {
			g.index[k] = i
		}
	}
	return g, nil
}

// Places returns a copy of the loaded places.
func (g *Gazetteer) Places() []Place {
	return append([]Place(nil), g.places...)
}

// Resolve returns the place matching city and country.
func (g *Gazetteer) Resolve(ctx context.Context, city, country string) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}
	i, ok := g.index[placeKey(city, country)]
	if !ok {
		return Place{}, fmt.Errorf("%w: %s, %s", ErrPlaceNotFound, city, country)
	}
	return g.places[i], nil
}

// Check reports places with out-of-range coordinates or timezones the
// runtime cannot load.
func (g *Gazetteer) Check() []error {
	var problems []error
	for _, p := range g.places {
		if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
			problems = append(problems, fmt.Errorf("%s: coordinates %g,%g out of range", p.Label(), p.Latitude, p.Longitude))
		}
		if _, err := time.LoadLocation(p.Timezone); err != nil || p.Timezone == "" {
			problems = append(problems, fmt.Errorf("%s: timezone %q cannot be loaded", p.Label(), p.Timezone))
		}
	}
	return problems
}

// placeKey folds a city and country into a lookup key.
func placeKey(city, country string) string {
	return foldName(city) + "|" + foldName(country)
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(strings.Fields(out), " ")
}
