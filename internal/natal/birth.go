package natal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for birth date and clock time.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Birth is the metadata echoed into a chart.
type Birth struct {
	Name      string    `json:"name,omitempty"`
	Local     time.Time `json:"local"`
	UTC       time.Time `json:"utc"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
	Place     string    `json:"place,omitempty"`
}

// Subject names the birth for error messages: the person's name when known,
// otherwise the UTC instant.
func (b Birth) Subject() string {
	if b.Name != "" {
		return b.Name
	}
	return b.UTC.Format(time.RFC3339)
}

// BirthInput is the human-entered form of a birth: local date and clock
// time at a named place.
type BirthInput struct {
	Name    string `toml:"name"`
	Date    string `toml:"date"`
	Time    string `toml:"time"`
	City    string `toml:"city"`
	Country string `toml:"country"`
}

// Validate checks that every field is present and that date and time
// parse. It runs before any location lookup or ephemeris call.
func (in BirthInput) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name}, {"date", in.Date}, {"time", in.Time},
		{"city", in.City}, {"country", in.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fail(KindValidation, in.Name, fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}
	if _, err := ParseBirth(in.Date, in.Time, time.UTC); err != nil {
		return fail(KindValidation, in.Name, err)
	}
	return nil
}

// ParseBirth parses a YYYY-MM-DD date and HH:MM 24-hour clock time as a
// wall-clock moment in loc.
func ParseBirth(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, errors.New("nil location")
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: use YYYY-MM-DD", date)
	}
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: use HH:MM (24-hour)", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// validateCoordinates rejects latitudes outside [-90,90] and longitudes
// outside [-180,180].
func validateCoordinates(lat, lon float64) error {
	if !(lat >= -90 && lat <= 90) {
		return fmt.Errorf("latitude %g out of range", lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return fmt.Errorf("longitude %g out of range", lon)
	}
	return nil
}
