package natal

import "github.com/papapumpkin/astrolabe/internal/zodiac"

// enneagramRule awards Points to Type when Body sits in one of Houses or
// one of Signs.
type enneagramRule struct {
	Type   int
	Body   zodiac.Planet
	Houses []int
	Signs  []zodiac.Sign
	Points int
}

var enneagramRules = []enneagramRule{
	{Type: 1, Body: zodiac.Saturn, Houses: []int{1, 10}, Points: 3},
	{Type: 1, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Virgo, zodiac.Capricorn}, Points: 2},
	{Type: 2, Body: zodiac.Venus, Houses: []int{1, 7}, Points: 3},
	{Type: 2, Body: zodiac.Moon, Signs: []zodiac.Sign{zodiac.Cancer, zodiac.Libra}, Points: 2},
	{Type: 3, Body: zodiac.Sun, Houses: []int{10}, Points: 3},
	{Type: 3, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Leo, zodiac.Aries, zodiac.Capricorn}, Points: 2},
	{Type: 4, Body: zodiac.Moon, Signs: []zodiac.Sign{zodiac.Cancer, zodiac.Scorpio, zodiac.Pisces}, Points: 3},
	{Type: 4, Body: zodiac.Moon, Houses: []int{4, 8, 12}, Points: 2},
	{Type: 5, Body: zodiac.Mercury, Houses: []int{1, 3, 9}, Points: 3},
	{Type: 5, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Aquarius, zodiac.Virgo, zodiac.Gemini}, Points: 2},
	{Type: 6, Body: zodiac.Moon, Houses: []int{1}, Points: 3},
	{Type: 6, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Cancer, zodiac.Virgo}, Points: 2},
	{Type: 7, Body: zodiac.Jupiter, Houses: []int{1, 9}, Points: 3},
	{Type: 7, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Sagittarius, zodiac.Gemini, zodiac.Aquarius}, Points: 2},
	{Type: 8, Body: zodiac.Mars, Houses: []int{1, 8, 10}, Points: 3},
	{Type: 8, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Scorpio, zodiac.Aries}, Points: 2},
	{Type: 9, Body: zodiac.Sun, Signs: []zodiac.Sign{zodiac.Pisces, zodiac.Libra, zodiac.Taurus}, Points: 2},
	{Type: 9, Body: zodiac.Moon, Signs: []zodiac.Sign{zodiac.Pisces, zodiac.Libra}, Points: 2},
}

// dominantPlanetType gives one extra point to the type associated with the
// chart's dominant planet.
var dominantPlanetType = map[zodiac.Planet]int{
	zodiac.Saturn:  1,
	zodiac.Venus:   2,
	zodiac.Sun:     3,
	zodiac.Moon:    4,
	zodiac.Mercury: 5,
	zodiac.Jupiter: 7,
	zodiac.Mars:    8,
	zodiac.Pluto:   8,
	zodiac.Neptune: 9,
}

// InferEnneagram scores the nine types from the rule table and returns the
// primary type and its wing. The primary is the highest score, lowest type
// on ties. The wing is the better-scoring neighbour on the circle, the
// preceding one on ties.
func InferEnneagram(positions []zodiac.Position, dominant zodiac.Planet) (primary, wing int) {
	scores := enneagramScores(positions, dominant)

	primary = 1
	for t := 2; t <= 9; t++ {
		if scores[t] > scores[primary] {
			primary = t
		}
	}

	before, after := primary-1, primary+1
	if before < 1 {
		before = 9
	}
	if after > 9 {
		after = 1
	}
	wing = before
	if scores[after] > scores[before] {
		wing = after
	}
	return primary, wing
}

// enneagramScores returns the points per type, indexed 1..9.
func enneagramScores(positions []zodiac.Position, dominant zodiac.Planet) [10]int {
	var scores [10]int
	for _, r := range enneagramRules {
		p, ok := find(positions, r.Body)
		if !ok {
			continue
		}
		if containsInt(r.Houses, p.House) || containsSign(r.Signs, p.Sign) {
			scores[r.Type] += r.Points
		}
	}
	if t, ok := dominantPlanetType[dominant]; ok {
		scores[t]++
	}
	return scores
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsSign(xs []zodiac.Sign, v zodiac.Sign) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
