package synastry

import (
	"fmt"
	"strings"
)

// Insight is a stable key with its rendered text. Keys are meant for
// programs; text is for people.
type Insight struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Insight limits and thresholds.
const (
	MaxInsights           = 5
	HarmoniousCountFloor  = 5  // harmonious aspects needed for harmonious_connections
	TopAspects            = 3  // strongest aspects considered per polarity
	CategoryStrengthFloor = 70 // category score at or above this is a strength
	CategoryConcernLimit  = 50 // category score below this is a challenge
)

// Insight keys that are not derived from an aspect or category.
const (
	KeyHarmoniousConnections = "harmonious_connections"
	KeyNoMajorChallenges     = "no_major_challenges"
)

// strengthCategories are checked in this order.
var strengthCategories = []Category{Romance, Communication, Friendship, Business}

// concernCategories are checked in this order.
var concernCategories = []Category{Communication, ConflictResolution}

var categoryStrengthText = map[Category]string{
	Romance:       "Strong romantic chemistry and attraction",
	Communication: "Excellent communication and understanding",
	Friendship:    "Solid foundation of friendship and mutual respect",
	Business:      "Reliable partnership in shared work and plans",
}

var categoryConcernText = map[Category]string{
	Communication:      "Communication styles may differ significantly",
	ConflictResolution: "Conflict resolution requires patience and effort",
}

// Strengths lists up to MaxInsights positive findings in a fixed order:
// the harmonious-count entry, trines and sextiles among the strongest
// harmonious aspects, then high-scoring categories.
func Strengths(aspects []Aspect, cats CategoryScores) []Insight {
	harmonious := byPolarity(aspects, Harmonious)

	out := make([]Insight, 0, MaxInsights)
	if len(harmonious) >= HarmoniousCountFloor {
		out = append(out, Insight{KeyHarmoniousConnections, "Multiple harmonious planetary connections"})
	}
	for _, a := range firstN(harmonious, TopAspects) {
		switch a.Type {
		case Trine:
			out = append(out, aspectInsight(a, "trine", "natural flow and ease"))
		case Sextile:
			out = append(out, aspectInsight(a, "sextile", "opportunities for growth"))
		}
	}
	for _, c := range strengthCategories {
		if cats.Get(c) >= CategoryStrengthFloor {
			out = append(out, Insight{categoryKey(c), categoryStrengthText[c]})
		}
	}
	return firstN(out, MaxInsights)
}

// Challenges lists up to MaxInsights concerns: the strongest challenging
// aspects, then low-scoring categories. With nothing to report it returns
// the single no_major_challenges entry.
func Challenges(aspects []Aspect, cats CategoryScores) []Insight {
	var out []Insight
	for _, a := range firstN(byPolarity(aspects, Challenging), TopAspects) {
		switch a.Type {
		case Square:
			out = append(out, aspectInsight(a, "square", "requires conscious effort to harmonize"))
		case Opposition:
			out = append(out, aspectInsight(a, "opposite", "need to balance opposing needs"))
		}
	}
	for _, c := range concernCategories {
		if cats.Get(c) < CategoryConcernLimit {
			out = append(out, Insight{categoryKey(c), categoryConcernText[c]})
		}
	}
	if len(out) == 0 {
		return []Insight{{KeyNoMajorChallenges, "No major astrological challenges; focus on personal growth"}}
	}
	return firstN(out, MaxInsights)
}

// Predictions holds the best-case and worst-case outlook.
type Predictions struct {
	BestCase  Insight `json:"best_case"`
	WorstCase Insight `json:"worst_case"`
}

var bestCaseText = map[Category]string{
	Romance:            "Lasting attraction that deepens into a devoted partnership",
	Friendship:         "A genuine friendship that carries the relationship through every season",
	Business:           "A dependable alliance with shared goals and clear roles",
	Communication:      "Open, easy conversation in which each feels heard",
	ConflictResolution: "Disagreements settled quickly and without lasting hurt",
}

var worstCaseText = map[Category]string{
	Romance:            "Attraction fades without deliberate care and attention",
	Friendship:         "Drifting into parallel lives with little common ground",
	Business:           "Clashing priorities over work, money, or long-term plans",
	Communication:      "Repeated misunderstandings that leave both feeling unheard",
	ConflictResolution: "Small disputes escalating into recurring conflict",
}

// Predict keys the best case by the top category and the worst case by the
// bottom category.
func Predict(cats CategoryScores) Predictions {
	top, bottom := cats.Top(), cats.Bottom()
	return Predictions{
		BestCase:  Insight{"best:" + string(top), bestCaseText[top]},
		WorstCase: Insight{"worst:" + string(bottom), worstCaseText[bottom]},
	}
}

func byPolarity(aspects []Aspect, p Polarity) []Aspect {
	var out []Aspect
	for _, a := range aspects {
		if a.Polarity() == p {
			out = append(out, a)
		}
	}
	return out
}

func firstN[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func aspectInsight(a Aspect, verb, meaning string) Insight {
	return Insight{
		Key:  fmt.Sprintf("aspect:%s:%s:%s", strings.ToLower(string(a.Type)), a.From, a.To),
		Text: fmt.Sprintf("%s %s %s: %s", a.From, verb, a.To, meaning),
	}
}

func categoryKey(c Category) string {
	return "category:" + string(c)
}
