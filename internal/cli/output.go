package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/arena"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
	au     aurora.Aurora
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer, color bool) *Output {
	return &Output{format: format, w: w, errW: errW, au: aurora.NewAurora(color)}
}

// newOutput builds the formatter for a command from the global flags
func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr(), !cfg.NoColor && cfg.Output != "json")
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case response.SessionList:
		o.printSessionList(v)
	case response.StrategyList:
		o.printStrategyList(v)
	case response.Suggestion:
		o.printSuggestion(v)
	case Explanation:
		o.printExplanation(v)
	case response.Beliefs:
		o.printBeliefs(v.Beliefs)
		o.printf("Most likely: %s\n", v.MostLikely)
	case ArenaSummary:
		o.printArenaSummary(v)
	case response.Health:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Explanation is a suggestion with the evaluation behind it
type Explanation struct {
	Board      string      `json:"board"`
	Mover      string      `json:"mover"`
	Strategy   string      `json:"strategy"`
	Move       int         `json:"move"`
	Found      bool        `json:"found"`
	Score      *int        `json:"score,omitempty"`
	MoveScores []CellScore `json:"move_scores,omitempty"`
	Candidates []int       `json:"candidates,omitempty"`
}

// CellScore is the search value of playing a cell
type CellScore struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

// ArenaSummary is the printable form of an arena batch
type ArenaSummary struct {
	X             string             `json:"x"`
	O             string             `json:"o"`
	Games         int                `json:"games"`
	XWins         int                `json:"x_wins"`
	OWins         int                `json:"o_wins"`
	Draws         int                `json:"draws"`
	AverageLength float64            `json:"average_length"`
	ModeledPlayer string             `json:"modeled_player,omitempty"`
	Beliefs       map[string]float64 `json:"beliefs,omitempty"`
}

// ArenaSummaryFromResult converts an arena result
func ArenaSummaryFromResult(r *arena.Result) ArenaSummary {
	s := ArenaSummary{
		X:             string(r.X),
		O:             string(r.O),
		Games:         r.Games,
		XWins:         r.XWins,
		OWins:         r.OWins,
		Draws:         r.Draws,
		AverageLength: r.AverageLength,
	}
	if r.Beliefs != nil {
		s.ModeledPlayer = r.ModeledPlayer.String()
		s.Beliefs = r.Beliefs.Map()
	}
	return s
}

func (o *Output) printSession(s response.Session) {
	o.printf("Session: %s\n", s.ID)
	o.printf("Strategy: %s\n", s.Strategy)
	o.printf("You: %s  AI: %s\n", o.mark(s.HumanPlayer), o.mark(s.AIPlayer))
	o.printf("Game: %d\n\n", s.GameNumber)

	o.printBoard(s.Board)
	o.printf("\n")

	switch {
	case s.Winner != "":
		o.printf("%s wins\n", o.mark(s.Winner))
	case s.Status == string(model.OutcomeDraw):
		o.printf("Draw\n")
	case s.AIPending:
		o.printf("AI (%s) is thinking...\n", o.mark(s.AIPlayer))
	case s.ToMove != "":
		o.printf("To move: %s\n", o.mark(s.ToMove))
	}

	o.printf("Score: you %d, AI %d, draws %d\n", s.Score.HumanWins, s.Score.AIWins, s.Score.Draws)
	if len(s.Beliefs) > 0 {
		o.printf("\nOpponent model:\n")
		o.printBeliefs(s.Beliefs)
	}
}

func (o *Output) printSessionList(l response.SessionList) {
	if len(l.Sessions) == 0 {
		o.printf("No sessions\n")
		return
	}
	o.printf("Sessions (%d):\n", len(l.Sessions))
	for _, s := range l.Sessions {
		o.printf("  - %s  %-12s %-12s you %d, AI %d, draws %d\n",
			s.ID, s.Strategy, s.Status, s.Score.HumanWins, s.Score.AIWins, s.Score.Draws)
	}
}

func (o *Output) printStrategyList(l response.StrategyList) {
	for _, s := range l.Strategies {
		name := s.Kind
		if s.Kind == l.Default {
			name += " (default)"
		}
		o.printf("%s\n", o.au.Bold(name))
		o.printf("  %s\n", s.Name)
		o.printf("  %s\n", s.Description)
		o.printf("  %s\n", s.HistoricalContext)
	}
}

func (o *Output) printSuggestion(s response.Suggestion) {
	if !s.Found {
		o.printf("No move: the board is full\n")
		return
	}
	o.printf("%s suggests cell %d\n", s.Strategy, s.Move)
}

func (o *Output) printExplanation(e Explanation) {
	o.printBoard(e.Board)
	o.printf("\n")
	if !e.Found {
		o.printf("No move: the board is full\n")
		return
	}
	o.printf("%s suggests cell %d for %s", e.Strategy, e.Move, o.mark(e.Mover))
	if e.Score != nil {
		o.printf(" (score %d)", *e.Score)
	}
	o.printf("\n")

	if len(e.MoveScores) > 0 {
		o.printf("\nMove scores:\n")
		for _, ms := range e.MoveScores {
			o.printf("  cell %d: %+d\n", ms.Cell, ms.Score)
		}
	}
	if len(e.Candidates) > 0 {
		cells := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			cells[i] = fmt.Sprint(c)
		}
		o.printf("\nCandidates: %s\n", strings.Join(cells, ", "))
	}
}

func (o *Output) printArenaSummary(s ArenaSummary) {
	o.printf("%s (X) vs %s (O), %d games\n", s.X, s.O, s.Games)
	o.printf("  X wins: %5d  %5.1f%%\n", s.XWins, percent(s.XWins, s.Games))
	o.printf("  O wins: %5d  %5.1f%%\n", s.OWins, percent(s.OWins, s.Games))
	o.printf("  Draws:  %5d  %5.1f%%\n", s.Draws, percent(s.Draws, s.Games))
	o.printf("  Average length: %.2f moves\n", s.AverageLength)
	if len(s.Beliefs) > 0 {
		o.printf("\nOpponent model (%s):\n", o.mark(s.ModeledPlayer))
		o.printBeliefs(s.Beliefs)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// printBeliefs prints a distribution in archetype order
func (o *Output) printBeliefs(beliefs map[string]float64) {
	names := make([]string, 0, len(beliefs))
	for _, a := range model.Archetypes {
		if _, ok := beliefs[a.String()]; ok {
			names = append(names, a.String())
		}
	}
	for name := range beliefs {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range names {
		p := beliefs[name]
		o.printf("  %-10s %5.1f%% %s\n", name, 100*p, strings.Repeat("#", int(p*20+0.5)))
	}
}

// printBoard draws a board key as a grid. Empty cells show their index.
func (o *Output) printBoard(key string) {
	board, err := model.ParseBoard(key)
	if err != nil {
		o.printf("%s\n", key)
		return
	}
	for row := range model.Size {
		if row > 0 {
			o.printf("  ---+---+---\n")
		}
		cells := make([]string, model.Size)
		for col := range model.Size {
			idx := row*model.Size + col
			if p := board.Get(idx); p.IsValid() {
				cells[col] = o.mark(p.String())
			} else {
				cells[col] = o.au.Faint(idx).String()
			}
		}
		o.printf("   %s \n", strings.Join(cells, " | "))
	}
}

// mark colors a player token
func (o *Output) mark(p string) string {
	switch p {
	case model.PlayerX.String():
		return o.au.Blue(p).String()
	case model.PlayerO.String():
		return o.au.Red(p).String()
	default:
		return p
	}
}
