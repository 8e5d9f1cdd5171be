package model

import "fmt"

// Player is the token a side places on the board
type Player byte

const (
	NoPlayer Player = 0   // Empty cell / no winner
	PlayerX  Player = 'X' // Moves first
	PlayerO  Player = 'O'
)

// Next returns the player who moves after p
func (p Player) Next() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

// IsValid returns true for X and O
func (p Player) IsValid() bool {
	return p == PlayerX || p == PlayerO
}

func (p Player) String() string {
	if p == NoPlayer {
		return ""
	}
	return string(p)
}

// ParsePlayer accepts "X"/"O" in either case
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

// MarshalText encodes the player as "X", "O" or ""
func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes "X", "O" or "" (no player)
func (p *Player) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = NoPlayer
		return nil
	}
	parsed, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
