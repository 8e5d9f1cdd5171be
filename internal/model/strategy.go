package model

import "fmt"

// StrategyKind identifies one of the move-selection strategies
type StrategyKind string

// Strategy kind constants
const (
	StrategyHeuristic StrategyKind = "heuristic"
	StrategyMinimax   StrategyKind = "minimax"
	StrategyAlphaBeta StrategyKind = "alphabeta"
	StrategyRollout   StrategyKind = "mcts"
	StrategyModeled   StrategyKind = "mcts-modeled"
	StrategyQLearning StrategyKind = "qlearning"
	StrategyLookup    StrategyKind = "lookup"
)

// DefaultStrategy is used when a session does not name one
const DefaultStrategy = StrategyHeuristic

// StrategyKinds returns all strategy kinds in display order
func StrategyKinds() []StrategyKind {
	return []StrategyKind{
		StrategyHeuristic,
		StrategyMinimax,
		StrategyAlphaBeta,
		StrategyRollout,
		StrategyModeled,
		StrategyQLearning,
		StrategyLookup,
	}
}

// ParseStrategyKind validates a strategy name; empty selects the default
func ParseStrategyKind(s string) (StrategyKind, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	for _, k := range StrategyKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
}

// StrategyInfo is the descriptive metadata shown alongside a strategy
type StrategyInfo struct {
	Kind              StrategyKind
	Name              string
	Description       string
	HistoricalContext string
}

// StrategyInfoFor returns the display metadata for a kind
func StrategyInfoFor(kind StrategyKind) StrategyInfo {
	switch kind {
	case StrategyHeuristic:
		return StrategyInfo{kind, "Rule-Based Heuristic",
			"Uses simple priority rules: win if possible, block opponent, take center, corners, then any space",
			"Classic approach from early computer gaming (1970s-1980s)"}
	case StrategyMinimax:
		return StrategyInfo{kind, "Minimax",
			"Explores all possible game states to find optimal moves, assuming perfect play from opponent",
			"Game theory algorithm developed by John von Neumann (1928)"}
	case StrategyAlphaBeta:
		return StrategyInfo{kind, "Alpha-Beta Pruning",
			"Optimized minimax that prunes branches that won't affect the final decision",
			"Optimization developed in the 1950s, popularized by chess programs"}
	case StrategyRollout:
		return StrategyInfo{kind, "Monte Carlo Tree Search",
			"Simulates random games from each position to evaluate moves statistically",
			"Modern approach popularized by AlphaGo (2016)"}
	case StrategyModeled:
		return StrategyInfo{kind, "MCTS + Opponent Model",
			"MCTS with a Bayesian belief distribution over opponent types (random, greedy, defensive, optimal)",
			"Monte Carlo methods combined with opponent modeling (2020s)"}
	case StrategyQLearning:
		return StrategyInfo{kind, "Q-Learning",
			"Reinforcement learning that picks moves from learned state-action values",
			"Reinforcement learning breakthrough by Watkins (1989)"}
	case StrategyLookup:
		return StrategyInfo{kind, "Lookup Table",
			"Pre-computed responses for early-game states, falling back to the heuristic",
			"Brute-force approach from early computing"}
	default:
		return StrategyInfo{Kind: kind, Name: string(kind)}
	}
}
