package redis

import "encoding/json"

// MatchState is the volatile board state of a running match as kept in
// Redis. Data is the game's own serialized payload and is opaque to the
// server: it is stored on every accepted turn and returned verbatim on
// every state read.
type MatchState struct {
	MatchID   uint            `json:"match_id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt int64           `json:"updated_at"` // Unix timestamp
}

// EmptyStateData is what a match starts with before the first turn.
var EmptyStateData = json.RawMessage("{}")
