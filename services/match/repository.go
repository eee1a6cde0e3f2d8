package match

import (
	"encoding/json"

	models "vanguard/models/postgres"
)

// Repository is the storage contract the engine and the queries run on.
// The production implementation lives in services/storage (Postgres
// records + Redis state blobs); tests use the in-memory implementation.
//
// Lookup methods return (nil, nil) when the record does not exist; an
// error always means the storage itself failed.
type Repository interface {
	// CreateMatch inserts a NEW match and returns its internal ID.
	// Returns ErrDuplicateCode if the join code is already allocated.
	CreateMatch(mapID uint, joinCode string) (uint, error)
	FindMatchByCode(joinCode string) (*models.Match, error)
	GetMatchInfo(matchID uint) (*models.Match, error)

	// State blobs. CreateEmptyState initializes the blob a match starts
	// with; SetState replaces it wholesale.
	CreateEmptyState(matchID uint) error
	GetState(matchID uint) (json.RawMessage, error)
	SetState(matchID uint, data json.RawMessage) error

	// JoinPlayer creates a participant slot. Returns ErrSlotTaken if the
	// side is already occupied and ErrAlreadyInMatch if the player
	// already has a slot in this match.
	JoinPlayer(matchID uint, playerID uint, side string) error
	GetPlayer(playerID uint, matchID uint) (*models.MatchPlayer, error)
	ListPlayers(matchID uint) ([]models.MatchPlayer, error)

	// ListPlayerMatches returns the player's slots ordered by match ID
	// ascending, so a given snapshot always lists in the same order.
	ListPlayerMatches(playerID uint) ([]models.MatchPlayer, error)

	UpdateMatchStatus(matchID uint, status string) error
	UpdatePlayerStatus(matchID uint, playerID uint, status string) error
	UpdateOtherPlayersStatus(matchID uint, excludedPlayerID uint, status string) error
}

// MapCatalog translates between the short map codes clients use and the
// internal map IDs match records reference.
type MapCatalog interface {
	CodeToID(code string) (uint, error)
	IDToCode(id uint) (string, error)
}
