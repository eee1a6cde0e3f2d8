package match

import (
	"encoding/json"
	"fmt"

	models "vanguard/models/postgres"
)

// MatchSummary is one entry of a player's match list.
type MatchSummary struct {
	JoinCode     string `json:"join_code"`
	MatchStatus  string `json:"match_status"`
	Side         string `json:"side"`
	PlayerStatus string `json:"player_status"`
	MapCode      string `json:"map_code"`
}

// MatchDetails is the public view a prospective joiner polls before
// joining. AvailableSide is empty when there is no single free side.
type MatchDetails struct {
	JoinCode      string `json:"join_code"`
	MatchStatus   string `json:"match_status"`
	MapCode       string `json:"map_code"`
	AvailableSide string `json:"available_side,omitempty"`
}

// PlayerStatusView reports a participant's own standing in a match.
type PlayerStatusView struct {
	JoinCode     string `json:"join_code"`
	MatchStatus  string `json:"match_status"`
	MapCode      string `json:"map_code"`
	PlayerSide   string `json:"player_side"`
	PlayerStatus string `json:"player_status"`
}

// StateView is the full match state payload. The post-join poll and the
// post-turn response both return this shape.
type StateView struct {
	JoinCode     string          `json:"join_code"`
	MatchStatus  string          `json:"match_status"`
	MapCode      string          `json:"map_code"`
	Data         json.RawMessage `json:"data"`
	PlayerSide   string          `json:"player_side"`
	PlayerStatus string          `json:"player_status"`
}

// Queries are the read-only projections over repository state. They
// perform no writes.
type Queries struct {
	repo Repository
	maps MapCatalog
}

func NewQueries(repo Repository, maps MapCatalog) *Queries {
	return &Queries{repo: repo, maps: maps}
}

// ListPlayerMatches returns every match the player participates in,
// ordered by match ID.
func (q *Queries) ListPlayerMatches(playerID uint) ([]MatchSummary, error) {
	slots, err := q.repo.ListPlayerMatches(playerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]MatchSummary, 0, len(slots))
	for _, slot := range slots {
		m, err := q.repo.GetMatchInfo(slot.MatchID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("match %d referenced by player %d does not exist", slot.MatchID, playerID)
		}
		mapCode, err := q.maps.IDToCode(m.MapID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, MatchSummary{
			JoinCode:     m.JoinCode,
			MatchStatus:  m.Status,
			Side:         slot.Side,
			PlayerStatus: slot.Status,
			MapCode:      mapCode,
		})
	}
	return summaries, nil
}

// GetMatchDetails returns the public joiner view for a match code.
func (q *Queries) GetMatchDetails(joinCode string) (*MatchDetails, error) {
	m, err := q.repo.FindMatchByCode(joinCode)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	mapCode, err := q.maps.IDToCode(m.MapID)
	if err != nil {
		return nil, err
	}
	players, err := q.repo.ListPlayers(m.ID)
	if err != nil {
		return nil, err
	}

	return &MatchDetails{
		JoinCode:      m.JoinCode,
		MatchStatus:   m.Status,
		MapCode:       mapCode,
		AvailableSide: availableSide(players),
	}, nil
}

// GetPlayerStatus returns the caller's side and status in the match.
func (q *Queries) GetPlayerStatus(joinCode string, playerID uint) (*PlayerStatusView, error) {
	m, err := q.repo.FindMatchByCode(joinCode)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	slot, err := q.repo.GetPlayer(playerID, m.ID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotParticipant
	}

	mapCode, err := q.maps.IDToCode(m.MapID)
	if err != nil {
		return nil, err
	}

	return &PlayerStatusView{
		JoinCode:     m.JoinCode,
		MatchStatus:  m.Status,
		MapCode:      mapCode,
		PlayerSide:   slot.Side,
		PlayerStatus: slot.Status,
	}, nil
}

// GetMatchState returns the full state payload for a participant.
func (q *Queries) GetMatchState(joinCode string, playerID uint) (*StateView, error) {
	m, err := q.repo.FindMatchByCode(joinCode)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	slot, err := q.repo.GetPlayer(playerID, m.ID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotParticipant
	}

	mapCode, err := q.maps.IDToCode(m.MapID)
	if err != nil {
		return nil, err
	}
	data, err := q.repo.GetState(m.ID)
	if err != nil {
		return nil, err
	}

	return &StateView{
		JoinCode:     m.JoinCode,
		MatchStatus:  m.Status,
		MapCode:      mapCode,
		Data:         data,
		PlayerSide:   slot.Side,
		PlayerStatus: slot.Status,
	}, nil
}

// availableSide computes the single free side of a match. With zero or
// two occupied sides there is no well-defined free side and the result
// is empty.
func availableSide(players []models.MatchPlayer) string {
	if len(players) != 1 {
		return ""
	}
	return models.OtherSide(players[0].Side)
}
