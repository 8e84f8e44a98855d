package zodiac

import "math"

// RawReading is one body as reported by an ephemeris provider.
type RawReading struct {
	Body       Planet  `toml:"name" json:"name"`
	Longitude  float64 `toml:"longitude" json:"longitude"`
	House      int     `toml:"house" json:"house"`
	Retrograde bool    `toml:"retrograde" json:"retrograde"`
}

// Sky is the complete provider answer for one birth moment: a reading per
// body plus the Ascendant longitude.
type Sky struct {
	Bodies    []RawReading
	Ascendant float64
}

// Position is the canonical record of one body in a chart.
type Position struct {
	Body         Planet  `json:"name"`
	Sign         Sign    `json:"sign"`
	DegreeInSign float64 `json:"degree"`
	Longitude    float64 `json:"longitude"`
	House        int     `json:"house"`
	Retrograde   bool    `json:"retrograde"`
}

// Element returns the element of the position's sign.
func (p Position) Element() Element { return p.Sign.Element() }

// Modality returns the modality of the position's sign.
func (p Position) Modality() Modality { return p.Sign.Modality() }

// Normalize converts a raw reading into a Position. The longitude must lie
// in [0,360) and the house in [1,12].
func Normalize(r RawReading) (Position, error) {
	if math.IsNaN(r.Longitude) || r.Longitude < 0 || r.Longitude >= 360 {
		return Position{}, &PositionError{Body: r.Body, Field: "longitude", Value: r.Longitude, Err: ErrInvalidPosition}
	}
	if r.House < 1 || r.House > HouseCount {
		return Position{}, &PositionError{Body: r.Body, Field: "house", Value: float64(r.House), Err: ErrInvalidPosition}
	}
	return Position{
		Body:         r.Body,
		Sign:         SignOf(r.Longitude),
		DegreeInSign: math.Mod(r.Longitude, 30),
		Longitude:    r.Longitude,
		House:        r.House,
		Retrograde:   r.Retrograde,
	}, nil
}
