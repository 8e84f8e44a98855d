package synastry

import (
	"github.com/papapumpkin/astrolabe/internal/natal"
)

// Overall score weights. The overall score is a blend of the category
// average, the aspect harmony, and the four pairing scores (each on a
// 0..10 scale).
const (
	CategoryShare   = 0.20
	HarmonyShare    = 0.30
	ElementFactor   = 1.5
	ModalityFactor  = 1.0
	MBTIFactor      = 1.5
	EnneagramFactor = 1.0
)

// Harmony maps the mean signed aspect strength from [-6,8] onto [0,100].
const (
	harmonyOffset = 6.0
	harmonySpan   = 14.0
)

// Band is the qualitative label of an overall score.
type Band string

// Bands from lowest to highest.
const (
	BandChallenging Band = "Challenging"
	BandModerate    Band = "Moderate"
	BandGood        Band = "Good"
	BandExcellent   Band = "Excellent"
)

// Lower bounds of the bands above BandChallenging.
const (
	ModerateFloor  = 40.0
	GoodFloor      = 60.0
	ExcellentFloor = 80.0
)

// BandFor labels an overall score.
func BandFor(score float64) Band {
	switch {
	case score >= ExcellentFloor:
		return BandExcellent
	case score >= GoodFloor:
		return BandGood
	case score >= ModerateFloor:
		return BandModerate
	}
	return BandChallenging
}

// Summary returns a one-line reading of the band.
func (b Band) Summary() string {
	switch b {
	case BandExcellent:
		return "Highly compatible"
	case BandGood:
		return "Strong potential"
	case BandModerate:
		return "Requires effort"
	}
	return "Significant work needed"
}

// Result is the full comparison of two charts. It is built once by Compare.
type Result struct {
	NameA       string          `json:"name_a"`
	NameB       string          `json:"name_b"`
	Overall     float64         `json:"overall_score"`
	Band        Band            `json:"band"`
	Harmony     float64         `json:"harmony"`
	Aspects     []Aspect        `json:"aspects"`
	Element     ElementCompat   `json:"element_compatibility"`
	Modality    ModalityCompat  `json:"modality_compatibility"`
	MBTI        MBTICompat      `json:"mbti_compatibility"`
	Enneagram   EnneagramCompat `json:"enneagram_compatibility"`
	Categories  CategoryScores  `json:"category_scores"`
	Strengths   []Insight       `json:"strengths"`
	Challenges  []Insight       `json:"challenges"`
	Predictions Predictions     `json:"predictions"`
}

// Comparer compares charts with a configured aspect detector.
type Comparer struct {
	Detector Detector
}

// Compare runs the default Comparer.
func Compare(a, b *natal.Chart) Result {
	return Comparer{}.Compare(a, b)
}

// Compare scores chart a against chart b. Swapping the arguments swaps the
// roles in every aspect but leaves the scores unchanged.
func (c Comparer) Compare(a, b *natal.Chart) Result {
	aspects := c.Detector.Detect(a.Planets(), b.Planets())

	da, db := a.Dominants(), b.Dominants()
	r := Result{
		NameA:     a.Birth().Name,
		NameB:     b.Birth().Name,
		Aspects:   aspects,
		Element:   PairElements(da.Element, db.Element),
		Modality:  PairModalities(da.Modality, db.Modality),
		MBTI:      PairMBTI(a.Archetype().MBTI, b.Archetype().MBTI),
		Enneagram: PairEnneagram(a.Archetype(), b.Archetype()),
	}
	r.Categories = ScoreCategories(aspects, r.Element.Score, r.Modality.Score)
	r.Harmony = Harmony(aspects)
	r.Overall = round1(clamp(CategoryShare*r.Categories.Average() +
		HarmonyShare*r.Harmony +
		ElementFactor*float64(r.Element.Score) +
		ModalityFactor*float64(r.Modality.Score) +
		MBTIFactor*float64(r.MBTI.Score) +
		EnneagramFactor*float64(r.Enneagram.Score)))
	r.Band = BandFor(r.Overall)
	r.Strengths = Strengths(aspects, r.Categories)
	r.Challenges = Challenges(aspects, r.Categories)
	r.Predictions = Predict(r.Categories)
	return r
}

// Harmony returns the mean signed aspect strength mapped onto [0,100]. An
// empty aspect list has mean 0.
func Harmony(aspects []Aspect) float64 {
	var mean float64
	if len(aspects) > 0 {
		for _, a := range aspects {
			mean += a.Signed()
		}
		mean /= float64(len(aspects))
	}
	return clamp((mean + harmonyOffset) / harmonySpan * 100)
}
