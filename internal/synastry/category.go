package synastry

import (
	"encoding/json"
	"math"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// Category is one of the five fixed relationship areas.
type Category string

// Categories in canonical order. Ties between categories resolve to the
// earlier one.
const (
	Romance            Category = "romance"
	Friendship         Category = "friendship"
	Business           Category = "business"
	Communication      Category = "communication"
	ConflictResolution Category = "conflict_resolution"
)

var categories = [5]Category{Romance, Friendship, Business, Communication, ConflictResolution}

// Categories returns every category in canonical order.
func Categories() [5]Category { return categories }

var categoryTitles = map[Category]string{
	Romance:            "Romance",
	Friendship:         "Friendship",
	Business:           "Business",
	Communication:      "Communication",
	ConflictResolution: "Conflict Resolution",
}

// Title returns the display name of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// AnyPlanet in a pair weight matches every partner planet.
const AnyPlanet zodiac.Planet = "*"

// PairWeight multiplies the signed strength of aspects between A and B, in
// either chart role. B may be AnyPlanet.
type PairWeight struct {
	A, B   zodiac.Planet
	Weight float64
}

// CategoryRule defines how one category is scored.
type CategoryRule struct {
	Category       Category
	Base           float64
	ElementWeight  float64
	ModalityWeight float64
	Share          float64 // weight in the overall category average
	Pairs          []PairWeight
}

// categoryRules holds the scoring rule of every category in canonical order.
var categoryRules = [5]CategoryRule{
	{Category: Romance, Base: 30, ElementWeight: 4, Share: 0.25, Pairs: []PairWeight{
		{zodiac.Venus, zodiac.Mars, 3}, {zodiac.Sun, zodiac.Moon, 2}, {zodiac.Venus, zodiac.Venus, 2},
	}},
	{Category: Friendship, Base: 40, ElementWeight: 2, Share: 0.20, Pairs: []PairWeight{
		{zodiac.Mercury, AnyPlanet, 2}, {zodiac.Sun, zodiac.Sun, 2}, {zodiac.Sun, zodiac.Jupiter, 2},
	}},
	{Category: Business, Base: 40, ModalityWeight: 2, Share: 0.15, Pairs: []PairWeight{
		{zodiac.Saturn, zodiac.Sun, 2}, {zodiac.Saturn, zodiac.Mars, 2}, {zodiac.Sun, zodiac.Mars, 2}, {zodiac.Mercury, zodiac.Saturn, 1},
	}},
	{Category: Communication, Base: 40, ElementWeight: 1, ModalityWeight: 1, Share: 0.20, Pairs: []PairWeight{
		{zodiac.Mercury, zodiac.Mercury, 4}, {zodiac.Mercury, AnyPlanet, 3},
	}},
	{Category: ConflictResolution, Base: 20, ElementWeight: 1, ModalityWeight: 3, Share: 0.20, Pairs: []PairWeight{
		{zodiac.Moon, zodiac.Mars, 2}, {zodiac.Mars, zodiac.Mars, 2}, {zodiac.Moon, zodiac.Moon, 2},
	}},
}

// weightFor returns the rule's multiplier for an aspect between a and b.
// An exact pair wins over a wildcard entry.
func (r CategoryRule) weightFor(a, b zodiac.Planet) float64 {
	for _, p := range r.Pairs {
		if p.B != AnyPlanet && isPair(a, b, p.A, p.B) {
			return p.Weight
		}
	}
	for _, p := range r.Pairs {
		if p.B == AnyPlanet && (p.A == a || p.A == b) {
			return p.Weight
		}
	}
	return 0
}

// score evaluates the rule and clamps to [0,100] before rounding.
func (r CategoryRule) score(aspects []Aspect, element, modality int) float64 {
	v := r.Base + r.ElementWeight*float64(element) + r.ModalityWeight*float64(modality)
	for _, a := range aspects {
		v += r.weightFor(a.From, a.To) * a.Signed()
	}
	return round1(clamp(v))
}

// CategoryScores holds one score in [0,100] per category, indexed in
// canonical order.
type CategoryScores [5]float64

// ScoreCategories scores all five categories from the aspect list and the
// element and modality pairing scores.
func ScoreCategories(aspects []Aspect, element, modality int) CategoryScores {
	var s CategoryScores
	for i, r := range categoryRules {
		s[i] = r.score(aspects, element, modality)
	}
	return s
}

// Get returns the score of c, or 0 for an unknown category.
func (s CategoryScores) Get(c Category) float64 {
	for i, x := range categories {
		if x == c {
			return s[i]
		}
	}
	return 0
}

// Average returns the share-weighted mean of the category scores.
func (s CategoryScores) Average() float64 {
	var sum float64
	for i, r := range categoryRules {
		sum += r.Share * s[i]
	}
	return sum
}

// Top returns the highest-scoring category, earliest on ties.
func (s CategoryScores) Top() Category {
	best := 0
	for i := range s {
		if s[i] > s[best] {
			best = i
		}
	}
	return categories[best]
}

// Bottom returns the lowest-scoring category, earliest on ties.
func (s CategoryScores) Bottom() Category {
	worst := 0
	for i := range s {
		if s[i] < s[worst] {
			worst = i
		}
	}
	return categories[worst]
}

// MarshalJSON encodes the scores as a category→score object.
func (s CategoryScores) MarshalJSON() ([]byte, error) {
	m := make(map[Category]float64, len(categories))
	for i, c := range categories {
		m[c] = s[i]
	}
	return json.Marshal(m)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
