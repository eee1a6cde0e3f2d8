package match

import "encoding/json"

// Turn is one player's submitted update. Data is the game's serialized
// board state and is stored verbatim; Win is the structured terminal
// claim carried alongside it, so ending a match never depends on what
// happens to appear inside the payload text.
type Turn struct {
	Data json.RawMessage `json:"data"`
	Win  bool            `json:"win"`
}

// Verdict is a validator's ruling on a proposed turn.
type Verdict struct {
	// Legal reports whether the turn is accepted as a continuation of
	// the current state.
	Legal bool
	// Terminal reports whether the turn ends the match in the acting
	// player's favor.
	Terminal bool
}

// TurnValidator rules on proposed turns. Deep game-rule validation is
// the game's own business; the engine only acts on the verdict.
type TurnValidator interface {
	Evaluate(currentState json.RawMessage, turn Turn) (Verdict, error)
}

// BasicValidator accepts any well-formed payload and trusts the turn's
// terminal claim. It stands in for the game-specific validator clients
// of this package are expected to provide.
type BasicValidator struct{}

func (BasicValidator) Evaluate(_ json.RawMessage, turn Turn) (Verdict, error) {
	if len(turn.Data) == 0 || !json.Valid(turn.Data) {
		return Verdict{}, nil
	}
	return Verdict{Legal: true, Terminal: turn.Win}, nil
}
