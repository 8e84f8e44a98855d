// Package ephemeris provides file-backed stand-ins for the two external
// collaborators of chart building: an ephemeris table that answers planet
// positions for known birth moments, and a gazetteer that resolves place
// names to coordinates and a timezone. Both load from TOML.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// CoordinateTolerance is how far (in degrees) a query may sit from a
// table entry's coordinates and still match it.
const CoordinateTolerance = 0.01

// Sentinel errors for table and gazetteer lookups.
var (
	// ErrNoEntry indicates the table holds no chart for the requested moment
	// and coordinates.
	ErrNoEntry = errors.New("no ephemeris entry for birth moment")
	// ErrPlaceNotFound indicates the gazetteer has no matching place.
	ErrPlaceNotFound = errors.New("place not found")
)

// ChartEntry is one [[chart]] block of an ephemeris table file.
type ChartEntry struct {
	Label     string              `toml:"label"`
	UTC       time.Time           `toml:"utc"`
	Latitude  float64             `toml:"latitude"`
	Longitude float64             `toml:"longitude"`
	Ascendant float64             `toml:"ascendant"`
	Bodies    []zodiac.RawReading `toml:"body"`
}

// Sky returns the entry as a provider answer.
func (e ChartEntry) Sky() zodiac.Sky {
	return zodiac.Sky{
		Bodies:    append([]zodiac.RawReading(nil), e.Bodies...),
		Ascendant: e.Ascendant,
	}
}

type tableFile struct {
	Charts []ChartEntry `toml:"chart"`
}

// Table answers position queries from precomputed chart entries.
type Table struct {
	Path    string
	entries []ChartEntry
}

// LoadTable reads an ephemeris table file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ephemeris table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// ParseTable decodes ephemeris table TOML.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &Table{entries: f.Charts}, nil
}

// Entries returns a copy of the loaded chart entries.
func (t *Table) Entries() []ChartEntry {
	out := make([]ChartEntry, len(t.entries))
	for i, e := range t.entries {
		e.Bodies = append([]zodiac.RawReading(nil), e.Bodies...)
		out[i] = e
	}
	return out
}

// Lookup returns the entry with the given label.
func (t *Table) Lookup(label string) (ChartEntry, bool) {
	for _, e := range t.entries {
		if e.Label == label {
			e.Bodies = append([]zodiac.RawReading(nil), e.Bodies...)
			return e, true
		}
	}
	return ChartEntry{}, false
}

// Positions returns the sky for the entry matching utc exactly and the
// coordinates within CoordinateTolerance.
func (t *Table) Positions(ctx context.Context, utc time.Time, lat, lon float64) (zodiac.Sky, error) {
	if err := ctx.Err(); err != nil {
		return zodiac.Sky{}, err
	}
	for _, e := range t.entries {
		if !e.UTC.Equal(utc) {
			continue
		}
		if math.Abs(e.Latitude-lat) <= CoordinateTolerance && math.Abs(e.Longitude-lon) <= CoordinateTolerance {
			return e.Sky(), nil
		}
	}
	return zodiac.Sky{}, fmt.Errorf("%w: %s at %.4f,%.4f", ErrNoEntry, utc.Format(time.RFC3339), lat, lon)
}

// Check reports structural problems in the table: entries with missing or
// duplicated tracked bodies and readings that fail normalization.
func (t *Table) Check() []error {
	var problems []error
	for i, e := range t.entries {
		name := e.Label
		if name == "" {
			name = fmt.Sprintf("chart #%d", i+1)
		}
		seen := make(map[zodiac.Planet]int)
		for _, b := range e.Bodies {
			seen[b.Body]++
			if _, err := zodiac.Normalize(b); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", name, err))
			}
		}
		for _, p := range zodiac.Tracked() {
			switch seen[p] {
			case 0:
				problems = append(problems, fmt.Errorf("%s: %s missing", name, p))
			case 1:
			default:
				problems = append(problems, fmt.Errorf("%s: %s listed %d times", name, p, seen[p]))
			}
		}
		if e.Ascendant < 0 || e.Ascendant >= 360 {
			problems = append(problems, fmt.Errorf("%s: ascendant %g out of range", name, e.Ascendant))
		}
	}
	return problems
}
