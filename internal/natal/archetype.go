package natal

import (
	"fmt"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// Heuristic thresholds for the MBTI-style code. These are fixed
// conventions, not a validated instrument.
const (
	intuitionRatio  = 1.2 // Fire+Air must exceed Earth by this factor for N
	airThinkingBias = 0.5 // weight of Air toward T
	placementBonus  = 1.0 // Mercury in Fire/Air (T) or Venus in Water (F)
	perceivingRatio = 0.8 // Mutable must exceed Cardinal+Fixed by this factor for P
)

// Archetype is the inferred personality code of a chart.
type Archetype struct {
	MBTI      string `json:"mbti"`
	Enneagram int    `json:"enneagram"`
	Wing      int    `json:"wing"`
}

// EnneagramLabel formats the type and wing as "1w9".
func (a Archetype) EnneagramLabel() string {
	return fmt.Sprintf("%dw%d", a.Enneagram, a.Wing)
}

// InferMBTI derives a four-letter code from the element and modality
// distribution, refined by the signs of Mercury and Venus.
func InferMBTI(dist zodiac.Distribution, positions []zodiac.Position) string {
	fire := float64(dist.Element(zodiac.Fire))
	earth := float64(dist.Element(zodiac.Earth))
	air := float64(dist.Element(zodiac.Air))
	water := float64(dist.Element(zodiac.Water))

	code := []byte("ISFJ")
	if fire+air > earth+water {
		code[0] = 'E'
	}
	if fire+air > earth*intuitionRatio {
		code[1] = 'N'
	}

	thinking := fire + air*airThinkingBias
	feeling := water
	if p, ok := find(positions, zodiac.Mercury); ok {
		if e := p.Element(); e == zodiac.Fire || e == zodiac.Air {
			thinking += placementBonus
		}
	}
	if p, ok := find(positions, zodiac.Venus); ok && p.Element() == zodiac.Water {
		feeling += placementBonus
	}
	if thinking > feeling {
		code[2] = 'T'
	}

	mutable := float64(dist.Modality(zodiac.Mutable))
	settled := float64(dist.Modality(zodiac.Cardinal) + dist.Modality(zodiac.Fixed))
	if mutable > settled*perceivingRatio {
		code[3] = 'P'
	}
	return string(code)
}

func find(positions []zodiac.Position, body zodiac.Planet) (zodiac.Position, bool) {
	for _, p := range positions {
		if p.Body == body {
			return p, true
		}
	}
	return zodiac.Position{}, false
}
