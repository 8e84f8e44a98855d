package natal

import "github.com/papapumpkin/astrolabe/internal/zodiac"

// Dominance weights. A planet's score is its Big-Three weight plus one point
// per stellium it belongs to; ties fall to zodiac.Tracked() priority order.
const (
	LuminaryWeight   = 2 // Sun and Moon
	ChartRulerWeight = 1 // ruler of the Ascendant sign
	StelliumWeight   = 1 // per stellium membership
)

// Dominants is the leading planet, sign, element, and modality of a chart.
// Each axis is resolved independently.
type Dominants struct {
	Planet   zodiac.Planet   `json:"planet"`
	Sign     zodiac.Sign     `json:"sign"`
	Element  zodiac.Element  `json:"element"`
	Modality zodiac.Modality `json:"modality"`
}

// ResolveDominants picks the highest-count value on each axis. Ties resolve
// to the earliest entry of the fixed order for that axis: zodiac.Elements(),
// zodiac.Modalities(), zodiac sign order, and zodiac.Tracked().
func ResolveDominants(positions []zodiac.Position, dist zodiac.Distribution, stelliums []Stellium, rising zodiac.Sign) Dominants {
	var d Dominants

	best := -1
	for _, e := range zodiac.Elements() {
		if n := dist.Element(e); n > best {
			d.Element, best = e, n
		}
	}

	best = -1
	for _, m := range zodiac.Modalities() {
		if n := dist.Modality(m); n > best {
			d.Modality, best = m, n
		}
	}

	var signCount [zodiac.SignCount]int
	for _, p := range positions {
		if p.Body.IsTracked() && p.Sign.Valid() {
			signCount[p.Sign]++
		}
	}
	best = -1
	for s, n := range signCount {
		if n > best {
			d.Sign, best = zodiac.Sign(s), n
		}
	}

	scores := planetScores(stelliums, rising)
	best = -1
	for i, p := range zodiac.Tracked() {
		if scores[i] > best {
			d.Planet, best = p, scores[i]
		}
	}
	return d
}

// planetScores returns the dominance score of every tracked body, indexed
// by priority.
func planetScores(stelliums []Stellium, rising zodiac.Sign) [zodiac.TrackedCount]int {
	var scores [zodiac.TrackedCount]int
	scores[zodiac.Sun.Priority()] += LuminaryWeight
	scores[zodiac.Moon.Priority()] += LuminaryWeight
	if ruler := rising.Ruler(); ruler.IsTracked() {
		scores[ruler.Priority()] += ChartRulerWeight
	}
	for _, s := range stelliums {
		for _, m := range s.Members {
			if m.IsTracked() {
				scores[m.Priority()] += StelliumWeight
			}
		}
	}
	return scores
}
