package synastry

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/astrolabe/internal/ephemeris"
	"github.com/papapumpkin/astrolabe/internal/natal"
)

// scoreTolerance covers rounding to one decimal place.
const scoreTolerance = 0.05

func loadChart(t *testing.T, label string) *natal.Chart {
	t.Helper()
	tbl, err := ephemeris.LoadTable("../ephemeris/testdata/ephemeris.toml")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	e, ok := tbl.Lookup(label)
	if !ok {
		t.Fatalf("no table entry %q", label)
	}
	c, err := natal.NewBuilder(tbl, nil, 0).Build(context.Background(), e.UTC, e.Latitude, e.Longitude)
	if err != nil {
		t.Fatalf("Build(%s): %v", label, err)
	}
	return c
}

func keys(in []Insight) []string {
	out := make([]string, len(in))
	for i, x := range in {
		out[i] = x.Key
	}
	return out
}

func TestCompareFixtures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		other      string
		overall    float64
		band       Band
		categories [5]float64
		pairing    [4]int // element, modality, mbti, enneagram
		aspects    int
		strengths  []string
		challenges []string
		best       string
		worst      string
	}{
		{
			name:       "good match",
			other:      "kenji",
			overall:    73.9,
			band:       BandGood,
			categories: [5]float64{65.0, 100.0, 72.0, 100.0, 60.0},
			pairing:    [4]int{8, 6, 8, 8},
			aspects:    25,
			strengths: []string{
				"harmonious_connections",
				"aspect:trine:North Node:Moon",
				"aspect:trine:Saturn:Chiron",
				"aspect:trine:North Node:Mercury",
				"category:communication",
			},
			challenges: []string{
				"aspect:opposition:Jupiter:Chiron",
				"aspect:opposition:Jupiter:Jupiter",
				"aspect:square:North Node:Saturn",
			},
			best:  "best:friendship",
			worst: "worst:conflict_resolution",
		},
		{
			name:       "moderate match",
			other:      "ana",
			overall:    54.0,
			band:       BandModerate,
			categories: [5]float64{50.0, 90.0, 64.0, 90.0, 50.0},
			pairing:    [4]int{3, 5, 7, 5},
			aspects:    43,
			strengths: []string{
				"harmonious_connections",
				"aspect:trine:Saturn:Mercury",
				"aspect:trine:Uranus:Mars",
				"aspect:trine:Neptune:Sun",
				"category:communication",
			},
			challenges: []string{
				"aspect:square:Jupiter:Neptune",
				"aspect:square:Pluto:Mars",
				"aspect:square:Jupiter:Venus",
			},
			best:  "best:friendship",
			worst: "worst:romance",
		},
	}

	rui := loadChart(t, "rui")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Compare(rui, loadChart(t, tt.other))

			if math.Abs(r.Overall-tt.overall) > scoreTolerance {
				t.Errorf("Overall = %v, want %v", r.Overall, tt.overall)
			}
			if r.Band != tt.band {
				t.Errorf("Band = %s, want %s", r.Band, tt.band)
			}
			for i, c := range Categories() {
				if got := r.Categories.Get(c); math.Abs(got-tt.categories[i]) > scoreTolerance {
					t.Errorf("%s = %v, want %v", c.Title(), got, tt.categories[i])
				}
			}
			pairing := [4]int{r.Element.Score, r.Modality.Score, r.MBTI.Score, r.Enneagram.Score}
			if pairing != tt.pairing {
				t.Errorf("pairing scores = %v, want %v", pairing, tt.pairing)
			}
			if len(r.Aspects) != tt.aspects {
				t.Errorf("got %d aspects, want %d", len(r.Aspects), tt.aspects)
			}
			if diff := cmp.Diff(tt.strengths, keys(r.Strengths)); diff != "" {
				t.Errorf("strengths mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.challenges, keys(r.Challenges)); diff != "" {
				t.Errorf("challenges mismatch (-want +got):\n%s", diff)
			}
			if r.Predictions.BestCase.Key != tt.best || r.Predictions.WorstCase.Key != tt.worst {
				t.Errorf("predictions = %s / %s, want %s / %s",
					r.Predictions.BestCase.Key, r.Predictions.WorstCase.Key, tt.best, tt.worst)
			}
		})
	}
}

func TestCompareSymmetry(t *testing.T) {
	t.Parallel()
	for _, other := range []string{"ana", "kenji"} {
		a, b := loadChart(t, "rui"), loadChart(t, other)
		ab, ba := Compare(a, b), Compare(b, a)

		if ab.Overall != ba.Overall {
			t.Errorf("%s: Overall %v vs %v", other, ab.Overall, ba.Overall)
		}
		if ab.Categories != ba.Categories {
			t.Errorf("%s: categories %v vs %v", other, ab.Categories, ba.Categories)
		}

		swapped := make([]Aspect, len(ba.Aspects))
		for i, x := range ba.Aspects {
			swapped[i] = x.Swapped()
		}
		byPair := func(xs []Aspect) {
			sort.Slice(xs, func(i, j int) bool {
				if xs[i].From != xs[j].From {
					return xs[i].From < xs[j].From
				}
				return xs[i].To < xs[j].To
			})
		}
		want := append([]Aspect(nil), ab.Aspects...)
		byPair(want)
		byPair(swapped)
		if diff := cmp.Diff(want, swapped); diff != "" {
			t.Errorf("%s: aspect sets differ after role swap (-ab +ba):\n%s", other, diff)
		}
	}
}

func TestCompareSelf(t *testing.T) {
	t.Parallel()
	rui := loadChart(t, "rui")
	r := Compare(rui, rui)

	if r.MBTI.Differences != 0 || r.MBTI.Score != 6 {
		t.Errorf("MBTI self pairing = %+v", r.MBTI)
	}
	if r.Enneagram.Score != 6 || r.Element.Score != 7 || r.Modality.Score != 6 {
		t.Errorf("self pairing scores = %d/%d/%d", r.Enneagram.Score, r.Element.Score, r.Modality.Score)
	}
	// Every planet is conjunct itself.
	var exact int
	for _, a := range r.Aspects {
		if a.From == a.To && a.Type == Conjunction && a.Orb == 0 {
			exact++
		}
	}
	if exact != 12 {
		t.Errorf("got %d exact self-conjunctions, want 12", exact)
	}
	if r.Overall < 0 || r.Overall > 100 {
		t.Errorf("Overall %v out of range", r.Overall)
	}
}

func TestCompareWorkersAgree(t *testing.T) {
	t.Parallel()
	a, b := loadChart(t, "rui"), loadChart(t, "kenji")
	one := Comparer{Detector: Detector{Workers: 1}}.Compare(a, b)
	many := Comparer{Detector: Detector{Workers: 12}}.Compare(a, b)
	if diff := cmp.Diff(one, many); diff != "" {
		t.Errorf("results differ by worker count (-1 +12):\n%s", diff)
	}
}

func TestBandFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score float64
		want  Band
	}{
		{0, BandChallenging},
		{39.9, BandChallenging},
		{40, BandModerate},
		{59.9, BandModerate},
		{60, BandGood},
		{79.9, BandGood},
		{80, BandExcellent},
		{100, BandExcellent},
	}
	for _, tt := range tests {
		tt := tt
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestHarmony(t *testing.T) {
	t.Parallel()
	if got := Harmony(nil); math.Abs(got-600.0/14) > 1e-9 {
		t.Errorf("Harmony(nil) = %v, want %v", got, 600.0/14)
	}
	all := []Aspect{{Type: Trine, Strength: 8}, {Type: Trine, Strength: 8}}
	if got := Harmony(all); got != 100 {
		t.Errorf("Harmony(exact trines) = %v, want 100", got)
	}
	hard := []Aspect{{Type: Square, Strength: 6}}
	if got := Harmony(hard); got != 0 {
		t.Errorf("Harmony(exact square) = %v, want 0", got)
	}
}

func TestChallengesNoneFound(t *testing.T) {
	t.Parallel()
	aspects := []Aspect{{Type: Trine, Strength: 5}, {Type: Conjunction, Strength: 4}}
	cats := CategoryScores{60, 60, 60, 60, 60}
	got := Challenges(aspects, cats)
	if len(got) != 1 || got[0].Key != KeyNoMajorChallenges {
		t.Errorf("Challenges = %v, want single %s", keys(got), KeyNoMajorChallenges)
	}
}

func TestChallengesFromCategories(t *testing.T) {
	t.Parallel()
	cats := CategoryScores{60, 60, 60, 49.9, 10}
	got := keys(Challenges(nil, cats))
	want := []string{"category:communication", "category:conflict_resolution"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Challenges mismatch (-want +got):\n%s", diff)
	}
}

func TestStrengthsSkipConjunctions(t *testing.T) {
	t.Parallel()
	aspects := []Aspect{
		{From: "Sun", To: "Moon", Type: Conjunction, Strength: 6},
		{From: "Venus", To: "Mars", Type: Sextile, Strength: 3},
		{From: "Moon", To: "Moon", Type: Trine, Strength: 2},
		{From: "Mars", To: "Sun", Type: Trine, Strength: 1},
	}
	got := keys(Strengths(aspects, CategoryScores{}))
	want := []string{"aspect:sextile:Venus:Mars", "aspect:trine:Moon:Moon"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Strengths mismatch (-want +got):\n%s", diff)
	}
}

func TestResultJSON(t *testing.T) {
	t.Parallel()
	r := Compare(loadChart(t, "rui"), loadChart(t, "kenji"))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"overall_score":73.9`, `"band":"Good"`, `"conflict_resolution":60`, `"key":"best:friendship"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("result JSON missing %s", want)
		}
	}
}
