package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	models "vanguard/models/postgres"
	redis_models "vanguard/models/redis"
	"vanguard/services/match"
	"vanguard/services/redis"

	"gorm.io/gorm"
)

// Store implements the match repository and the map catalog on top of
// Postgres (durable match, slot and map records) and Redis (volatile
// state blobs).
type Store struct {
	db    *gorm.DB
	redis *redis.RedisClient
}

func New(db *gorm.DB, redisClient *redis.RedisClient) *Store {
	return &Store{db: db, redis: redisClient}
}

func (s *Store) CreateMatch(mapID uint, joinCode string) (uint, error) {
	m := models.Match{
		JoinCode: joinCode,
		MapID:    mapID,
		Status:   models.MatchStatusNew,
	}
	if err := s.db.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, match.ErrDuplicateCode
		}
		return 0, fmt.Errorf("error creating match: %w", err)
	}
	return m.ID, nil
}

func (s *Store) FindMatchByCode(joinCode string) (*models.Match, error) {
	var m models.Match
	err := s.db.Where("join_code = ?", joinCode).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying match by code: %w", err)
	}
	return &m, nil
}

func (s *Store) GetMatchInfo(matchID uint) (*models.Match, error) {
	var m models.Match
	err := s.db.Where("id = ?", matchID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying match %d: %w", matchID, err)
	}
	return &m, nil
}

func (s *Store) CreateEmptyState(matchID uint) error {
	return s.redis.InitEmptyMatchState(matchID)
}

func (s *Store) GetState(matchID uint) (json.RawMessage, error) {
	state, err := s.redis.GetMatchState(matchID)
	if errors.Is(err, redis.ErrStateNotFound) {
		// Terminated matches have their state archived on the match
		// record and the Redis key removed; serve the archived copy.
		m, lookupErr := s.GetMatchInfo(matchID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if m != nil && len(m.FinalState) > 0 {
			return json.RawMessage(m.FinalState), nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return state.Data, nil
}

func (s *Store) SetState(matchID uint, data json.RawMessage) error {
	return s.redis.SaveMatchState(&redis_models.MatchState{
		MatchID:   matchID,
		Data:      data,
		UpdatedAt: time.Now().Unix(),
	})
}

func (s *Store) JoinPlayer(matchID uint, playerID uint, side string) error {
	slot := models.MatchPlayer{
		MatchID:  matchID,
		PlayerID: playerID,
		Side:     side,
		Status:   models.PlayerStatusActive,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The composite primary key and the (match, side) unique
			// index both surface as a duplicate; find out which.
			existing, lookupErr := s.GetPlayer(playerID, matchID)
			if lookupErr == nil && existing != nil {
				return match.ErrAlreadyInMatch
			}
			return match.ErrSlotTaken
		}
		return fmt.Errorf("error joining player %d to match %d: %w", playerID, matchID, err)
	}
	return nil
}

func (s *Store) GetPlayer(playerID uint, matchID uint) (*models.MatchPlayer, error) {
	var slot models.MatchPlayer
	err := s.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying player %d in match %d: %w", playerID, matchID, err)
	}
	return &slot, nil
}

func (s *Store) ListPlayers(matchID uint) ([]models.MatchPlayer, error) {
	var slots []models.MatchPlayer
	err := s.db.Where("match_id = ?", matchID).Order("side ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("error listing players of match %d: %w", matchID, err)
	}
	return slots, nil
}

func (s *Store) ListPlayerMatches(playerID uint) ([]models.MatchPlayer, error) {
	var slots []models.MatchPlayer
	err := s.db.Where("player_id = ?", playerID).Order("match_id ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("error listing matches of player %d: %w", playerID, err)
	}
	return slots, nil
}

func (s *Store) UpdateMatchStatus(matchID uint, status string) error {
	err := s.db.Model(&models.Match{}).
		Where("id = ?", matchID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("error updating status of match %d: %w", matchID, err)
	}
	return nil
}

func (s *Store) UpdatePlayerStatus(matchID uint, playerID uint, status string) error {
	err := s.db.Model(&models.MatchPlayer{}).
		Where("match_id = ? AND player_id = ?", matchID, playerID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("error updating player %d in match %d: %w", playerID, matchID, err)
	}
	return nil
}

func (s *Store) UpdateOtherPlayersStatus(matchID uint, excludedPlayerID uint, status string) error {
	err := s.db.Model(&models.MatchPlayer{}).
		Where("match_id = ? AND player_id <> ?", matchID, excludedPlayerID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("error updating opponents of player %d in match %d: %w", excludedPlayerID, matchID, err)
	}
	return nil
}

// CodeToID resolves a map code to its internal ID.
func (s *Store) CodeToID(code string) (uint, error) {
	var gm models.GameMap
	err := s.db.Where("code = ?", code).First(&gm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, match.ErrMapNotFound
		}
		return 0, fmt.Errorf("error querying map %q: %w", code, err)
	}
	return gm.ID, nil
}

// IDToCode resolves an internal map ID back to its code.
func (s *Store) IDToCode(id uint) (string, error) {
	var gm models.GameMap
	err := s.db.Where("id = ?", id).First(&gm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", match.ErrMapNotFound
		}
		return "", fmt.Errorf("error querying map %d: %w", id, err)
	}
	return gm.Code, nil
}

var _ match.Repository = (*Store)(nil)
var _ match.MapCatalog = (*Store)(nil)
