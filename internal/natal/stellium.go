package natal

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/papapumpkin/astrolabe/internal/zodiac"
)

// StelliumMinimum is the smallest group that counts as a stellium.
const StelliumMinimum = 3

// Grouping says whether a stellium clusters by sign or by house.
type Grouping string

// Stellium groupings. Sign groups sort ahead of house groups of equal size.
const (
	BySign  Grouping = "sign"
	ByHouse Grouping = "house"
)

// Stellium is a cluster of at least StelliumMinimum tracked bodies sharing a
// sign or a house. Members are listed in planet priority order.
type Stellium struct {
	Grouping Grouping
	Sign     zodiac.Sign // set when Grouping is BySign
	House    int         // set when Grouping is ByHouse
	Members  []zodiac.Planet
}

// Count returns the number of member bodies.
func (s Stellium) Count() int { return len(s.Members) }

// Location names the shared sign ("Taurus") or house ("House 11").
func (s Stellium) Location() string {
	if s.Grouping == ByHouse {
		return fmt.Sprintf("House %d", s.House)
	}
	return s.Sign.String()
}

// Contains reports whether p is a member.
func (s Stellium) Contains(p zodiac.Planet) bool {
	for _, m := range s.Members {
		if m == p {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the stellium with its location label and count.
func (s Stellium) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     Grouping        `json:"type"`
		Location string          `json:"location"`
		Planets  []zodiac.Planet `json:"planets"`
		Count    int             `json:"count"`
	}{s.Grouping, s.Location(), s.Members, s.Count()})
}

// FindStelliums groups tracked positions by sign and, independently, by
// house. A body may belong to one sign stellium and one house stellium.
// Positions with an invalid sign or house are left out of that grouping.
func FindStelliums(positions []zodiac.Position) []Stellium {
	var bySign [zodiac.SignCount][]zodiac.Planet
	var byHouse [zodiac.HouseCount + 1][]zodiac.Planet

	for _, p := range sortedTracked(positions) {
		if p.Sign.Valid() {
			bySign[p.Sign] = append(bySign[p.Sign], p.Body)
		}
		if p.House >= 1 && p.House <= zodiac.HouseCount {
			byHouse[p.House] = append(byHouse[p.House], p.Body)
		}
	}

	var out []Stellium
	for sign, members := range bySign {
		if len(members) >= StelliumMinimum {
			out = append(out, Stellium{Grouping: BySign, Sign: zodiac.Sign(sign), Members: members})
		}
	}
	for house := 1; house <= zodiac.HouseCount; house++ {
		if members := byHouse[house]; len(members) >= StelliumMinimum {
			out = append(out, Stellium{Grouping: ByHouse, House: house, Members: members})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count() != b.Count() {
			return a.Count() > b.Count()
		}
		if a.Grouping != b.Grouping {
			return a.Grouping == BySign
		}
		if a.Grouping == BySign {
			return a.Sign < b.Sign
		}
		return a.House < b.House
	})
	return out
}

// sortedTracked returns the tracked positions in planet priority order.
func sortedTracked(positions []zodiac.Position) []zodiac.Position {
	out := make([]zodiac.Position, 0, len(positions))
	for _, p := range positions {
		if p.Body.IsTracked() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Body.Priority() < out[j].Body.Priority()
	})
	return out
}
