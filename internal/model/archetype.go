package model

import "math"

// Archetype is a behavioural model of how an opponent picks moves
type Archetype int

const (
	ArchetypeRandom Archetype = iota
	ArchetypeGreedy
	ArchetypeDefensive
	ArchetypeOptimal
)

// ArchetypeCount is the number of archetypes
const ArchetypeCount = 4

// Archetypes lists every archetype in the fixed sampling order
var Archetypes = [ArchetypeCount]Archetype{
	ArchetypeRandom,
	ArchetypeGreedy,
	ArchetypeDefensive,
	ArchetypeOptimal,
}

func (a Archetype) String() string {
	switch a {
	case ArchetypeRandom:
		return "random"
	case ArchetypeGreedy:
		return "greedy"
	case ArchetypeDefensive:
		return "defensive"
	case ArchetypeOptimal:
		return "optimal"
	default:
		return "unknown"
	}
}

// BeliefDistribution holds P(archetype) indexed by Archetype.
// Probabilities are non-negative and sum to 1.
type BeliefDistribution [ArchetypeCount]float64

// UniformBeliefs returns the prior used for a fresh opponent model
func UniformBeliefs() BeliefDistribution {
	var d BeliefDistribution
	for i := range d {
		d[i] = 1.0 / ArchetypeCount
	}
	return d
}

// Probability returns the belief mass on a
func (d BeliefDistribution) Probability(a Archetype) float64 {
	if a < 0 || int(a) >= ArchetypeCount {
		return 0
	}
	return d[a]
}

// Sum returns the total mass
func (d BeliefDistribution) Sum() float64 {
	total := 0.0
	for _, p := range d {
		total += p
	}
	return total
}

// IsNormalized reports whether all entries are non-negative and sum to 1
// within tolerance
func (d BeliefDistribution) IsNormalized(tolerance float64) bool {
	for _, p := range d {
		if p < 0 || math.IsNaN(p) {
			return false
		}
	}
	return math.Abs(d.Sum()-1) <= tolerance
}

// Map returns the distribution keyed by archetype name, for display
func (d BeliefDistribution) Map() map[string]float64 {
	m := make(map[string]float64, ArchetypeCount)
	for _, a := range Archetypes {
		m[a.String()] = d[a]
	}
	return m
}

// MostLikely returns the archetype with the highest belief, lowest index on ties
func (d BeliefDistribution) MostLikely() Archetype {
	best := ArchetypeRandom
	for _, a := range Archetypes {
		if d[a] > d[best] {
			best = a
		}
	}
	return best
}
