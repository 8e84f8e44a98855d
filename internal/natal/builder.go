// Package natal builds immutable natal charts from ephemeris answers and
// interprets them: stelliums, dominant factors, and personality archetypes.
package natal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/astrolabe/internal/ephemeris"
	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// Ephemeris answers the sky at a birth moment and place.
type Ephemeris interface {
	Positions(ctx context.Context, utc time.Time, lat, lon float64) (zodiac.Sky, error)
}

// Locator resolves a city and country to coordinates and a timezone.
type Locator interface {
	Resolve(ctx context.Context, city, country string) (ephemeris.Place, error)
}

// Builder assembles charts. It calls the Ephemeris once per chart and never
// retries. A zero Timeout leaves the caller's context deadline in charge.
type Builder struct {
	Ephemeris Ephemeris
	Locator   Locator
	Timeout   time.Duration
}

// NewBuilder returns a Builder over the given collaborators.
func NewBuilder(eph Ephemeris, loc Locator, timeout time.Duration) *Builder {
	return &Builder{Ephemeris: eph, Locator: loc, Timeout: timeout}
}

// Build creates the chart for a UTC birth instant at the given coordinates.
func (b *Builder) Build(ctx context.Context, utc time.Time, lat, lon float64) (*Chart, error) {
	utc = utc.UTC()
	return b.build(ctx, Birth{
		Local:     utc,
		UTC:       utc,
		Latitude:  lat,
		Longitude: lon,
		Timezone:  "UTC",
	})
}

// BuildFor validates a human-entered birth, resolves its place, converts
// the local clock time to UTC in the place's timezone, and builds the chart.
func (b *Builder) BuildFor(ctx context.Context, in BirthInput) (*Chart, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if b.Locator == nil {
		return nil, fail(KindLocation, in.Name, errors.New("no locator configured"))
	}
	place, err := b.Locator.Resolve(ctx, in.City, in.Country)
	if err != nil {
		return nil, fail(KindLocation, in.Name, err)
	}
	if place.Timezone == "" {
		return nil, fail(KindLocation, in.Name, fmt.Errorf("no timezone for %s", place.Label()))
	}
	loc, err := time.LoadLocation(place.Timezone)
	if err != nil {
		return nil, fail(KindLocation, in.Name, fmt.Errorf("timezone for %s: %w", place.Label(), err))
	}
	local, err := ParseBirth(in.Date, in.Time, loc)
	if err != nil {
		return nil, fail(KindValidation, in.Name, err)
	}
	return b.build(ctx, Birth{
		Name:      in.Name,
		Local:     local,
		UTC:       local.UTC(),
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Timezone:  place.Timezone,
		Place:     place.Label(),
	})
}

func (b *Builder) build(ctx context.Context, birth Birth) (*Chart, error) {
	subject := birth.Subject()
	if birth.UTC.IsZero() {
		return nil, fail(KindValidation, subject, errors.New("birth time not set"))
	}
	if err := validateCoordinates(birth.Latitude, birth.Longitude); err != nil {
		return nil, fail(KindValidation, subject, err)
	}
	if b.Ephemeris == nil {
		return nil, fail(KindEphemeris, subject, errors.New("no ephemeris configured"))
	}

	callCtx := ctx
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}
	sky, err := b.Ephemeris.Positions(callCtx, birth.UTC, birth.Latitude, birth.Longitude)
	if err != nil {
		return nil, fail(KindEphemeris, subject, err)
	}
	return Assemble(birth, sky)
}

// Assemble turns an ephemeris answer into a chart. Every tracked body must
// appear exactly once; untracked extras are ignored.
func Assemble(birth Birth, sky zodiac.Sky) (*Chart, error) {
	subject := birth.Subject()

	var seen [zodiac.TrackedCount]bool
	positions := make([]zodiac.Position, zodiac.TrackedCount)
	for _, r := range sky.Bodies {
		if !r.Body.IsTracked() {
			continue
		}
		i := r.Body.Priority()
		if seen[i] {
			return nil, fail(KindEphemeris, subject, fmt.Errorf("%w: %s", ErrDuplicateBody, r.Body))
		}
		p, err := zodiac.Normalize(r)
		if err != nil {
			return nil, fail(KindInvalidPosition, subject, err)
		}
		positions[i], seen[i] = p, true
	}
	for i, body := range zodiac.Tracked() {
		if !seen[i] {
			return nil, fail(KindEphemeris, subject, fmt.Errorf("%w: %s", ErrMissingBody, body))
		}
	}

	rising, err := zodiac.Normalize(zodiac.RawReading{Body: zodiac.Ascendant, Longitude: sky.Ascendant, House: 1})
	if err != nil {
		return nil, fail(KindInvalidPosition, subject, err)
	}

	dist := zodiac.Distribute(positions)
	stelliums := FindStelliums(positions)
	dominants := ResolveDominants(positions, dist, stelliums, rising.Sign)
	primary, wing := InferEnneagram(positions, dominants.Planet)

	return &Chart{
		data: ChartData{
			Birth: birth,
			BigThree: BigThree{
				Sun:       positions[zodiac.Sun.Priority()],
				Moon:      positions[zodiac.Moon.Priority()],
				Ascendant: rising,
			},
			Planets:      positions,
			Distribution: dist,
			Stelliums:    copyStelliums(stelliums),
			Dominants:    dominants,
			Archetype: Archetype{
				MBTI:      InferMBTI(dist, positions),
				Enneagram: primary,
				Wing:      wing,
			},
		},
		sky: zodiac.Sky{
			Bodies:    append([]zodiac.RawReading(nil), sky.Bodies...),
			Ascendant: sky.Ascendant,
		},
	}, nil
}
