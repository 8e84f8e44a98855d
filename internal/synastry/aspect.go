// Package synastry compares two natal charts: it finds the aspects between
// their planets, pairs their dominant factors and archetypes, and folds
// everything into category scores and an overall compatibility result.
package synastry

import (
	"math"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// AspectType names an angular relationship between two planets.
type AspectType string

// Aspect types in table order. Sorting falls back to this order.
const (
	Conjunction AspectType = "Conjunction"
	Sextile     AspectType = "Sextile"
	Square      AspectType = "Square"
	Trine       AspectType = "Trine"
	Opposition  AspectType = "Opposition"
)

// Polarity says whether an aspect supports or strains the pairing.
type Polarity string

// Polarities.
const (
	Harmonious  Polarity = "harmonious"
	Challenging Polarity = "challenging"
)

type aspectSpec struct {
	Type   AspectType
	Angle  float64
	Orb    float64
	Weight float64
}

// aspectTable holds the canonical angle, orb tolerance, and base weight of
// each aspect. Negative weights are challenging.
var aspectTable = [...]aspectSpec{
	{Conjunction, 0, 8, 6},
	{Sextile, 60, 4, 4},
	{Square, 90, 6, -6},
	{Trine, 120, 6, 8},
	{Opposition, 180, 8, -4},
}

func (t AspectType) spec() (aspectSpec, int) {
	for i, s := range aspectTable {
		if s.Type == t {
			return s, i
		}
	}
	return aspectSpec{Type: t}, len(aspectTable)
}

// Angle returns the exact angle of the aspect in degrees.
func (t AspectType) Angle() float64 { s, _ := t.spec(); return s.Angle }

// Tolerance returns the widest orb that still counts as the aspect.
func (t AspectType) Tolerance() float64 { s, _ := t.spec(); return s.Orb }

// Weight returns the signed strength of an exact aspect.
func (t AspectType) Weight() float64 { s, _ := t.spec(); return s.Weight }

// Polarity reports whether the aspect type is harmonious or challenging.
func (t AspectType) Polarity() Polarity {
	if t.Weight() < 0 {
		return Challenging
	}
	return Harmonious
}

// Aspect is one planet of chart A in aspect to one planet of chart B.
type Aspect struct {
	From       zodiac.Planet `json:"from"`
	To         zodiac.Planet `json:"to"`
	Type       AspectType    `json:"type"`
	Separation float64       `json:"separation"`
	Orb        float64       `json:"orb"`
	Strength   float64       `json:"strength"`
}

// Polarity returns the polarity of the aspect's type.
func (a Aspect) Polarity() Polarity { return a.Type.Polarity() }

// Signed returns the strength with the polarity applied: negative for
// challenging aspects.
func (a Aspect) Signed() float64 {
	if a.Polarity() == Challenging {
		return -a.Strength
	}
	return a.Strength
}

// Swapped returns the aspect with the chart roles exchanged.
func (a Aspect) Swapped() Aspect {
	a.From, a.To = a.To, a.From
	return a
}

// Separation returns the shortest arc between two ecliptic longitudes, in
// [0,180].
func Separation(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 360-d)
}

// orbEpsilon absorbs the floating-point error of separations computed from
// decimal longitudes: 128.3° - 2.3° comes out as 126.00000000000001.
const orbEpsilon = 1e-9

// Classify finds the aspect whose exact angle lies nearest sep among those
// within tolerance. A separation on the tolerance boundary, up to
// floating-point error, counts; its orb is reported as the tolerance.
func Classify(sep float64) (t AspectType, orb float64, ok bool) {
	best := math.Inf(1)
	for _, s := range aspectTable {
		o := math.Abs(sep - s.Angle)
		if o <= s.Orb+orbEpsilon && o < best {
			t, orb, ok, best = s.Type, math.Min(o, s.Orb), true, o
		}
	}
	return t, orb, ok
}

// Strength decays linearly from the aspect's full weight at an exact angle
// to zero at its tolerance, and never drops below zero.
func Strength(t AspectType, orb float64) float64 {
	s, _ := t.spec()
	if s.Orb == 0 {
		return 0
	}
	return math.Max(0, math.Abs(s.Weight)*(1-orb/s.Orb))
}

// DefaultWorkers is the aspect scan concurrency used when Detector.Workers
// is not set.
const DefaultWorkers = 4

// Detector scans every planet pair of two charts for aspects. Rows of chart
// A are spread across at most Workers goroutines; the merged result is
// sorted, so output never depends on scheduling.
type Detector struct {
	Workers int
}

// Detect returns all aspects between the tracked positions of a and b in
// canonical order.
func (d Detector) Detect(a, b []zodiac.Position) []Aspect {
	workers := d.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	p := pool.NewWithResults[[]Aspect]().WithMaxGoroutines(workers)
	for _, pa := range a {
		if !pa.Body.IsTracked() {
			continue
		}
		pa := pa
		p.Go(func() []Aspect { return scanRow(pa, b) })
	}

	out := make([]Aspect, 0, len(a))
	for _, row := range p.Wait() {
		out = append(out, row...)
	}
	SortAspects(out)
	return out
}

func scanRow(pa zodiac.Position, b []zodiac.Position) []Aspect {
	var row []Aspect
	for _, pb := range b {
		if !pb.Body.IsTracked() {
			continue
		}
		sep := Separation(pa.Longitude, pb.Longitude)
		t, orb, ok := Classify(sep)
		if !ok {
			continue
		}
		row = append(row, Aspect{
			From:       pa.Body,
			To:         pb.Body,
			Type:       t,
			Separation: sep,
			Orb:        orb,
			Strength:   Strength(t, orb),
		})
	}
	return row
}

// SortAspects orders aspects by strength descending, then chart-A planet
// priority, chart-B planet priority, and aspect table order.
func SortAspects(aspects []Aspect) {
	sort.SliceStable(aspects, func(i, j int) bool {
		a, b := aspects[i], aspects[j]
		if a.Strength != b.Strength {
			return a.Strength > b.Strength
		}
		if pa, pb := a.From.Priority(), b.From.Priority(); pa != pb {
			return pa < pb
		}
		if pa, pb := a.To.Priority(), b.To.Priority(); pa != pb {
			return pa < pb
		}
		_, ia := a.Type.spec()
		_, ib := b.Type.spec()
		return ia < ib
	})
}
