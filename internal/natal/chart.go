package natal

import (
	"encoding/json"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// BigThree holds the Sun, Moon, and Ascendant positions of a chart.
type BigThree struct {
	Sun       zodiac.Position `json:"sun"`
	Moon      zodiac.Position `json:"moon"`
	Ascendant zodiac.Position `json:"rising"`
}

// ChartData is a detached copy of everything a chart holds. It is the
// shape handed to report renderers and JSON output.
type ChartData struct {
	Birth        Birth               `json:"birth"`
	BigThree     BigThree            `json:"big_three"`
	Planets      []zodiac.Position   `json:"planets"`
	Distribution zodiac.Distribution `json:"distribution"`
	Stelliums    []Stellium          `json:"stelliums"`
	Dominants    Dominants           `json:"dominants"`
	Archetype    Archetype           `json:"archetype"`
}

// Chart is the immutable natal chart of one person. It is created once by
// a Builder and is safe for concurrent reads; accessors return copies.
type Chart struct {
	data ChartData
	sky  zodiac.Sky
}

// Birth returns the echoed birth metadata.
func (c *Chart) Birth() Birth { return c.data.Birth }

// BigThree returns the Sun, Moon, and Ascendant positions.
func (c *Chart) BigThree() BigThree { return c.data.BigThree }

// Planets returns the tracked positions in priority order.
func (c *Chart) Planets() []zodiac.Position {
	return append([]zodiac.Position(nil), c.data.Planets...)
}

// Position returns the position of body p.
func (c *Chart) Position(p zodiac.Planet) (zodiac.Position, bool) {
	if p == zodiac.Ascendant {
		return c.data.BigThree.Ascendant, true
	}
	return find(c.data.Planets, p)
}

// Distribution returns the element and modality counts.
func (c *Chart) Distribution() zodiac.Distribution { return c.data.Distribution }

// Stelliums returns the detected stelliums in canonical order.
func (c *Chart) Stelliums() []Stellium { return copyStelliums(c.data.Stelliums) }

// Dominants returns the dominant planet, sign, element, and modality.
func (c *Chart) Dominants() Dominants { return c.data.Dominants }

// Archetype returns the inferred MBTI code and Enneagram type and wing.
func (c *Chart) Archetype() Archetype { return c.data.Archetype }

// Sky returns a copy of the ephemeris answer the chart was built from.
func (c *Chart) Sky() zodiac.Sky {
	return zodiac.Sky{
		Bodies:    append([]zodiac.RawReading(nil), c.sky.Bodies...),
		Ascendant: c.sky.Ascendant,
	}
}

// Data returns a detached copy of the chart contents.
func (c *Chart) Data() ChartData {
	d := c.data
	d.Planets = c.Planets()
	d.Stelliums = c.Stelliums()
	return d
}

// MarshalJSON encodes the chart through its ChartData view.
func (c *Chart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Data())
}

func copyStelliums(in []Stellium) []Stellium {
	out := make([]Stellium, len(in))
	for i, s := range in {
		s.Members = append([]zodiac.Planet(nil), s.Members...)
		out[i] = s
	}
	return out
}
