package storage

import (
	"encoding/json"
	"sync"

	models "vanguard/models/postgres"
	redis_models "vanguard/models/redis"
	"vanguard/services/match"
)

// MemoryStore implements the match repository and the map catalog fully
// in memory. It honors the same uniqueness rules as the Postgres-backed
// Store (join code, (match, player), (match, side)) so engine behavior
// is identical over either implementation. Used by tests and local runs
// without backing services.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  uint
	matches map[uint]*models.Match
	byCode  map[string]uint
	slots   map[uint][]*models.MatchPlayer
	states  map[uint]json.RawMessage
	maps    map[string]uint
	mapIDs  map[uint]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		matches: make(map[uint]*models.Match),
		byCode:  make(map[string]uint),
		slots:   make(map[uint][]*models.MatchPlayer),
		states:  make(map[uint]json.RawMessage),
		maps:    make(map[string]uint),
		mapIDs:  make(map[uint]string),
	}
}

// AddMap registers a catalog entry and returns its ID.
func (s *MemoryStore) AddMap(code string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uint(len(s.maps) + 1)
	s.maps[code] = id
	s.mapIDs[id] = code
	return id
}

func (s *MemoryStore) CreateMatch(mapID uint, joinCode string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[joinCode]; taken {
		return 0, match.ErrDuplicateCode
	}
	id := s.nextID
	s.nextID++
	s.matches[id] = &models.Match{
		ID:       id,
		JoinCode: joinCode,
		MapID:    mapID,
		Status:   models.MatchStatusNew,
	}
	s.byCode[joinCode] = id
	return id, nil
}

func (s *MemoryStore) FindMatchByCode(joinCode string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byCode[joinCode]
	if !ok {
		return nil, nil
	}
	return s.copyMatch(id), nil
}

func (s *MemoryStore) GetMatchInfo(matchID uint) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyMatch(matchID), nil
}

func (s *MemoryStore) CreateEmptyState(matchID uint) error {
	return s.SetState(matchID, redis_models.EmptyStateData)
}

func (s *MemoryStore) GetState(matchID uint) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.states[matchID]
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) SetState(matchID uint, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make(json.RawMessage, len(data))
	copy(stored, data)
	s.states[matchID] = stored
	return nil
}

func (s *MemoryStore) JoinPlayer(matchID uint, playerID uint, side string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots[matchID] {
		if slot.PlayerID == playerID {
			return match.ErrAlreadyInMatch
		}
		if slot.Side == side {
			return match.ErrSlotTaken
		}
	}
	s.slots[matchID] = append(s.slots[matchID], &models.MatchPlayer{
		MatchID:  matchID,
		PlayerID: playerID,
		Side:     side,
		Status:   models.PlayerStatusActive,
	})
	return nil
}

func (s *MemoryStore) GetPlayer(playerID uint, matchID uint) (*models.MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots[matchID] {
		if slot.PlayerID == playerID {
			c := *slot
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListPlayers(matchID uint) ([]models.MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MatchPlayer, 0, len(s.slots[matchID]))
	for _, slot := range s.slots[matchID] {
		out = append(out, *slot)
	}
	return out, nil
}

func (s *MemoryStore) ListPlayerMatches(playerID uint) ([]models.MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MatchPlayer
	// matches were assigned ascending IDs, so walking the ID range keeps
	// the listing order stable
	for id := uint(1); id < s.nextID; id++ {
		for _, slot := range s.slots[id] {
			if slot.PlayerID == playerID {
				out = append(out, *slot)
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateMatchStatus(matchID uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.matches[matchID]; ok {
		m.Status = status
	}
	return nil
}

func (s *MemoryStore) UpdatePlayerStatus(matchID uint, playerID uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots[matchID] {
		if slot.PlayerID == playerID {
			slot.Status = status
		}
	}
	return nil
}

func (s *MemoryStore) UpdateOtherPlayersStatus(matchID uint, excludedPlayerID uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots[matchID] {
		if slot.PlayerID != excludedPlayerID {
			slot.Status = status
		}
	}
	return nil
}

func (s *MemoryStore) CodeToID(code string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.maps[code]
	if !ok {
		return 0, match.ErrMapNotFound
	}
	return id, nil
}

func (s *MemoryStore) IDToCode(id uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.mapIDs[id]
	if !ok {
		return "", match.ErrMapNotFound
	}
	return code, nil
}

func (s *MemoryStore) copyMatch(id uint) *models.Match {
	m, ok := s.matches[id]
	if !ok {
		return nil
	}
	c := *m
	return &c
}

var _ match.Repository = (*MemoryStore)(nil)
var _ match.MapCatalog = (*MemoryStore)(nil)
