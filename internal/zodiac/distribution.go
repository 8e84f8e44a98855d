package zodiac

import "encoding/json"

// Distribution counts tracked bodies per element and per modality. Both
// sides sum to the number of positions counted.
type Distribution struct {
	elements   [4]int
	modalities [3]int
}

// Distribute counts each tracked body in positions once under its sign's
// element and modality. Untracked entries (the Ascendant) are ignored.
func Distribute(positions []Position) Distribution {
	var d Distribution
	for _, p := range positions {
		e, eok := elementIndex(p.Element())
		m, mok := modalityIndex(p.Modality())
		if !p.Body.IsTracked() || !eok || !mok {
			continue
		}
		d.elements[e]++
		d.modalities[m]++
	}
	return d
}

// Element returns the count for e, or zero for an unknown element.
func (d Distribution) Element(e Element) int {
	if i, ok := elementIndex(e); ok {
		return d.elements[i]
	}
	return 0
}

// Modality returns the count for m, or zero for an unknown modality.
func (d Distribution) Modality(m Modality) int {
	if i, ok := modalityIndex(m); ok {
		return d.modalities[i]
	}
	return 0
}

// Total returns the number of bodies counted.
func (d Distribution) Total() int {
	n := 0
	for _, c := range d.elements {
		n += c
	}
	return n
}

// Equal reports whether d and o hold the same counts.
func (d Distribution) Equal(o Distribution) bool {
	return d.elements == o.elements && d.modalities == o.modalities
}

// MarshalJSON encodes the distribution as two name→count maps.
func (d Distribution) MarshalJSON() ([]byte, error) {
	out := struct {
		Elements   map[Element]int  `json:"elements"`
		Modalities map[Modality]int `json:"modalities"`
	}{
		Elements:   make(map[Element]int, len(elements)),
		Modalities: make(map[Modality]int, len(modalities)),
	}
	for _, e := range elements {
		out.Elements[e] = d.Element(e)
	}
	for _, m := range modalities {
		out.Modalities[m] = d.Modality(m)
	}
	return json.Marshal(out)
}

func elementIndex(e Element) (int, bool) {
	for i, x := range elements {
		if x == e {
			return i, true
		}
	}
	return 0, false
}

func modalityIndex(m Modality) (int, bool) {
	for i, x := range modalities {
		if x == m {
			return i, true
		}
	}
	return 0, false
}
