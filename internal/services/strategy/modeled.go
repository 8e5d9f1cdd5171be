package strategy

import (
	"slices"
	"sync"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
)

// Likelihoods of an observed move under each archetype
const (
	completingMatch = 0.9
	completingMiss  = 0.02
	optimalMatch    = 0.8
	optimalMiss     = 0.05
)

// Modeled is a rollout strategy whose simulated opponent plays like an
// archetype drawn from a Bayesian belief distribution. Beliefs start
// uniform and are updated from every observed opponent move.
type Modeled struct {
	meta
	random    random.Random
	playouts  int
	heuristic *Heuristic

	mu      sync.Mutex
	beliefs model.BeliefDistribution
}

// NewModeled creates a new Modeled with uniform beliefs
func NewModeled(rnd random.Random, playouts int) *Modeled {
	return &Modeled{
		meta:      meta{kind: model.StrategyModeled},
		random:    rnd,
		playouts:  playouts,
		heuristic: NewHeuristic(rnd),
		beliefs:   model.UniformBeliefs(),
	}
}

// Beliefs returns a copy of the current distribution
func (s *Modeled) Beliefs() model.BeliefDistribution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beliefs
}

// RestoreBeliefs replaces the distribution if it is normalized
func (s *Modeled) RestoreBeliefs(d model.BeliefDistribution) {
	if !d.IsNormalized(1e-6) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beliefs = d
}

// FindMove runs playouts per candidate, sampling the opponent archetype
// once per playout. The strategy's own simulated moves are random.
func (s *Modeled) FindMove(board model.Board, mover model.Player) (int, bool) {
	beliefs := s.Beliefs()
	return bestByPlayouts(board, mover, s.playouts, func(b model.Board) model.Outcome {
		return s.playout(b, mover.Next(), mover, s.sampleArchetype(beliefs))
	})
}

func (s *Modeled) playout(b model.Board, toMove, self model.Player, opponent model.Archetype) model.Outcome {
	for {
		result := outcome.Detect(b)
		if result.IsOver() {
			return result
		}
		var idx int
		if toMove == self {
			idx, _ = randomEmpty(&b, s.random)
		} else {
			idx, _ = s.archetypeMove(opponent, b, toMove)
		}
		b[idx] = toMove
		toMove = toMove.Next()
	}
}

// sampleArchetype draws an archetype by inverse CDF over the fixed order,
// falling back to random if rounding leaves the draw uncovered
func (s *Modeled) sampleArchetype(beliefs model.BeliefDistribution) model.Archetype {
	r := s.random.Float64()
	cumulative := 0.0
	for _, a := range model.Archetypes {
		cumulative += beliefs[a]
		if r < cumulative {
			return a
		}
	}
	return model.ArchetypeRandom
}

// archetypeMove picks the move a player of archetype a would make
func (s *Modeled) archetypeMove(a model.Archetype, b model.Board, player model.Player) (int, bool) {
	switch a {
	case model.ArchetypeGreedy:
		if idx, ok := outcome.CompletingMove(b, player); ok {
			return idx, true
		}
	case model.ArchetypeDefensive:
		if idx, ok := outcome.CompletingMove(b, player.Next()); ok {
			return idx, true
		}
	case model.ArchetypeOptimal:
		return s.heuristic.FindMove(b, player)
	}
	return randomEmpty(&b, s.random)
}

// UpdateOpponentModel applies Bayes' rule for the move observed on before.
// The mover is inferred from the token counts on before. If the observed
// move has zero probability under every archetype with mass, the beliefs
// are left untouched.
func (s *Modeled) UpdateOpponentModel(observed int, before model.Board) {
	mover := before.ToMove()

	s.mu.Lock()
	defer s.mu.Unlock()

	var posterior model.BeliefDistribution
	evidence := 0.0
	for _, a := range model.Archetypes {
		posterior[a] = s.beliefs[a] * Likelihood(a, observed, before, mover)
		evidence += posterior[a]
	}
	if !(evidence > 0) {
		return
	}
	for a := range posterior {
		posterior[a] /= evidence
	}
	s.beliefs = posterior
}

// Likelihood returns P(observed | archetype a) for mover playing on before
func Likelihood(a model.Archetype, observed int, before model.Board, mover model.Player) float64 {
	switch a {
	case model.ArchetypeGreedy:
		if idx, ok := outcome.CompletingMove(before, mover); ok {
			return matchLikelihood(idx == observed)
		}
	case model.ArchetypeDefensive:
		if idx, ok := outcome.CompletingMove(before, mover.Next()); ok {
			return matchLikelihood(idx == observed)
		}
	case model.ArchetypeOptimal:
		if slices.Contains(Candidates(before, mover), observed) {
			return optimalMatch
		}
		return optimalMiss
	}
	if !before.IsEmpty(observed) {
		return 0
	}
	return 1 / float64(before.EmptyCount())
}

func matchLikelihood(matched bool) float64 {
	if matched {
		return completingMatch
	}
	return completingMiss
}
