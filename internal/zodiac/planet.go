package zodiac

// Planet names a tracked body. The Ascendant is not a planet but shares the
// type so it can travel through the same position records.
type Planet string

// Tracked bodies in priority order, followed by the Ascendant.
const (
	Sun       Planet = "Sun"
	Moon      Planet = "Moon"
	Mercury   Planet = "Mercury"
	Venus     Planet = "Venus"
	Mars      Planet = "Mars"
	Jupiter   Planet = "Jupiter"
	Saturn    Planet = "Saturn"
	Uranus    Planet = "Uranus"
	Neptune   Planet = "Neptune"
	Pluto     Planet = "Pluto"
	NorthNode Planet = "North Node"
	Chiron    Planet = "Chiron"

	Ascendant Planet = "Ascendant"
)

// TrackedCount is the number of tracked bodies.
const TrackedCount = 12

var tracked = [TrackedCount]Planet{
	Sun, Moon, Mercury, Venus, Mars, Jupiter,
	Saturn, Uranus, Neptune, Pluto, NorthNode, Chiron,
}

// Tracked returns the fixed set of bodies every chart must contain, in
// priority order. Dominance and sort tie-breaks use this order: first wins.
func Tracked() [TrackedCount]Planet { return tracked }

// Priority returns the tie-break rank of p (0 = Sun). Untracked names rank
// after every tracked body.
func (p Planet) Priority() int {
	for i, t := range tracked {
		if t == p {
			return i
		}
	}
	return TrackedCount
}

// IsTracked reports whether p belongs to the tracked set.
func (p Planet) IsTracked() bool { return p.Priority() < TrackedCount }

// String returns the planet name.
func (p Planet) String() string { return string(p) }
