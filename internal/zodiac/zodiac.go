// Package zodiac holds the fixed classification tables of the tropical zodiac
// (signs, elements, modalities, tracked bodies) and the normalization of raw
// ephemeris readings into canonical positions. Everything here is a pure
// function of its inputs; the tables are static and never mutated.
package zodiac

import (
	"fmt"
	"math"
)

// Sign is one of the twelve 30° segments of the ecliptic, Aries = 0.
type Sign int

// The twelve signs in zodiac order. The order doubles as the tie-break order
// for dominance and stellium sorting.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs.
const SignCount = 12

// HouseCount is the number of houses; houses are numbered from 1.
const HouseCount = 12

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Element is the classical element of a sign.
type Element string

// Elements.
const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

// Modality is the quality (cardinal, fixed, mutable) of a sign.
type Modality string

// Modalities.
const (
	Cardinal Modality = "Cardinal"
	Fixed    Modality = "Fixed"
	Mutable  Modality = "Mutable"
)

var (
	elements   = [4]Element{Fire, Earth, Air, Water}
	modalities = [3]Modality{Cardinal, Fixed, Mutable}
)

// Elements returns the elements in tie-break order.
func Elements() [4]Element { return elements }

// Modalities returns the modalities in tie-break order.
func Modalities() [3]Modality { return modalities }

var signElement = [SignCount]Element{
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
}

var signModality = [SignCount]Modality{
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
}

// signRuler maps each sign to its ruling body (modern rulerships for the
// three outer signs).
var signRuler = [SignCount]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Pluto, Jupiter, Saturn, Uranus, Neptune,
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return s >= Aries && s <= Pisces }

// String returns the sign name.
func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Element returns the sign's element, or "" for an invalid sign.
func (s Sign) Element() Element {
	if !s.Valid() {
		return ""
	}
	return signElement[s]
}

// Modality returns the sign's modality, or "" for an invalid sign.
func (s Sign) Modality() Modality {
	if !s.Valid() {
		return ""
	}
	return signModality[s]
}

// Ruler returns the body that rules the sign, or "" for an invalid sign.
func (s Sign) Ruler() Planet {
	if !s.Valid() {
		return ""
	}
	return signRuler[s]
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("zodiac: invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

// UnmarshalText decodes a sign name.
func (s *Sign) UnmarshalText(text []byte) error {
	parsed, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSign returns the sign with the given name.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("zodiac: unknown sign %q", name)
}

// SignOf returns the sign containing an ecliptic longitude. Longitudes
// outside [0,360) wrap around the circle; NaN and infinities have no sign
// and yield an invalid one.
func SignOf(longitude float64) Sign {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return -1
	}
	lon := math.Mod(longitude, 360)
	if lon < 0 {
		lon += 360
	}
	return min(Sign(lon/30), Pisces)
}
