package synastry

import (
	"fmt"

	"github.com/papapumpkin/astrolabe/internal/natal"
	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// ElementCompat pairs the dominant elements of two charts.
type ElementCompat struct {
	A              zodiac.Element `json:"a"`
	B              zodiac.Element `json:"b"`
	Score          int            `json:"score"`
	Interpretation string         `json:"interpretation"`
}

// ModalityCompat pairs the dominant modalities of two charts.
type ModalityCompat struct {
	A              zodiac.Modality `json:"a"`
	B              zodiac.Modality `json:"b"`
	Score          int             `json:"score"`
	Interpretation string          `json:"interpretation"`
}

// MBTICompat pairs the MBTI codes of two charts.
type MBTICompat struct {
	A              string `json:"a"`
	B              string `json:"b"`
	Differences    int    `json:"differences"`
	Score          int    `json:"score"`
	Interpretation string `json:"interpretation"`
}

// EnneagramCompat pairs the Enneagram types of two charts. Labels carry
// the wing ("1w9").
type EnneagramCompat struct {
	A              string `json:"a"`
	B              string `json:"b"`
	Score          int    `json:"score"`
	Interpretation string `json:"interpretation"`
}

// elementScores is symmetric; only one ordering of each pair is listed.
var elementScores = map[[2]zodiac.Element]int{
	{zodiac.Fire, zodiac.Fire}:   7,
	{zodiac.Fire, zodiac.Earth}:  3,
	{zodiac.Fire, zodiac.Air}:    8,
	{zodiac.Fire, zodiac.Water}:  4,
	{zodiac.Earth, zodiac.Earth}: 7,
	{zodiac.Earth, zodiac.Air}:   3,
	{zodiac.Earth, zodiac.Water}: 8,
	{zodiac.Air, zodiac.Air}:     7,
	{zodiac.Air, zodiac.Water}:   4,
	{zodiac.Water, zodiac.Water}: 7,
}

// PairElements scores two dominant elements.
func PairElements(a, b zodiac.Element) ElementCompat {
	score, ok := elementScores[[2]zodiac.Element{a, b}]
	if !ok {
		score = elementScores[[2]zodiac.Element{b, a}]
	}
	c := ElementCompat{A: a, B: b, Score: score}
	switch {
	case a == b:
		c.Interpretation = fmt.Sprintf("Both %s: similar energy and approach to life", a)
	case isPair(a, b, zodiac.Fire, zodiac.Air):
		c.Interpretation = "Fire + Air: stimulating and energizing, highly compatible"
	case isPair(a, b, zodiac.Earth, zodiac.Water):
		c.Interpretation = "Earth + Water: nurturing and stable, highly compatible"
	default:
		c.Interpretation = "Complementary elements: different approaches that can balance or clash"
	}
	return c
}

// PairModalities scores two dominant modalities.
func PairModalities(a, b zodiac.Modality) ModalityCompat {
	c := ModalityCompat{A: a, B: b}
	switch {
	case a == b:
		c.Score = 6
		c.Interpretation = fmt.Sprintf("Both %s: similar pace and approach to change", a)
	case isPair(a, b, zodiac.Cardinal, zodiac.Mutable):
		c.Score = 7
		c.Interpretation = "Cardinal + Mutable: initiative meets adaptability"
	case isPair(a, b, zodiac.Fixed, zodiac.Mutable):
		c.Score = 6
		c.Interpretation = "Fixed + Mutable: stability meets flexibility"
	default:
		c.Score = 5
		c.Interpretation = "Cardinal + Fixed: action meets resistance"
	}
	return c
}

var mbtiByDifferences = [...]struct {
	score int
	text  string
}{
	{6, "Identical types: deep understanding but little growth tension"},
	{7, "Very similar: easy understanding with slight differences"},
	{8, "Complementary: balanced similarities and differences"},
	{5, "Contrasting: requires effort but can be rewarding"},
	{4, "Opposite types: challenging but potentially transformative"},
}

// PairMBTI scores two MBTI codes by the number of differing letters.
func PairMBTI(a, b string) MBTICompat {
	diff := 0
	for i := 0; i < 4; i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			diff++
		}
	}
	m := mbtiByDifferences[diff]
	return MBTICompat{A: a, B: b, Differences: diff, Score: m.score, Interpretation: m.text}
}

// harmoniousTypes lists Enneagram pairs that complement each other, lower
// type first.
var harmoniousTypes = map[[2]int]bool{
	{1, 2}: true, {1, 7}: true, {2, 4}: true, {2, 8}: true,
	{3, 7}: true, {3, 9}: true, {4, 5}: true, {4, 9}: true,
	{5, 8}: true, {6, 9}: true, {7, 8}: true,
}

// PairEnneagram scores two archetypes by their primary Enneagram types.
func PairEnneagram(a, b natal.Archetype) EnneagramCompat {
	c := EnneagramCompat{A: a.EnneagramLabel(), B: b.EnneagramLabel()}
	lo, hi := a.Enneagram, b.Enneagram
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case lo == hi:
		c.Score = 6
		c.Interpretation = fmt.Sprintf("Both Type %d: deep understanding but may amplify weaknesses", lo)
	case harmoniousTypes[[2]int{lo, hi}]:
		c.Score = 8
		c.Interpretation = fmt.Sprintf("Type %d + Type %d: naturally complementary pairing", a.Enneagram, b.Enneagram)
	default:
		c.Score = 5
		c.Interpretation = fmt.Sprintf("Type %d + Type %d: requires conscious effort", a.Enneagram, b.Enneagram)
	}
	return c
}

func isPair[T comparable](a, b, x, y T) bool {
	return (a == x && b == y) || (a == y && b == x)
}
