package sync

import (
	"fmt"
	"log"

	models "vanguard/models/postgres"
	"vanguard/services/redis"

	"gorm.io/gorm"
)

// SyncManager copies the final board state of a terminated match from
// Redis into the durable match record, then drops the Redis key. Live
// reads keep serving from Redis until the copy happens; the archived
// column exists so a finished match survives a Redis wipe.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// MatchTerminated archives the match's final state. Called by the
// lifecycle engine after a match reaches ENDED or FORFEIT; a failure
// here is logged, never propagated, since the match transition itself
// already happened.
func (sm *SyncManager) MatchTerminated(matchID uint) {
	if err := sm.ArchiveFinalState(matchID); err != nil {
		log.Printf("error archiving final state of match %d: %v", matchID, err)
	}
}

// ArchiveFinalState synchronizes the match state from Redis to PostgreSQL
func (sm *SyncManager) ArchiveFinalState(matchID uint) error {
	state, err := sm.redisClient.GetMatchState(matchID)
	if err != nil {
		return fmt.Errorf("error getting match state from Redis: %v", err)
	}

	err = sm.db.Model(&models.Match{}).
		Where("id = ?", matchID).
		Update("final_state", []byte(state.Data)).Error
	if err != nil {
		return fmt.Errorf("error persisting final match state in PostgreSQL: %v", err)
	}

	// State reads on a terminal match still work: GetState falls back
	// to the archived copy once the key is gone.
	if err := sm.redisClient.DeleteMatchState(matchID); err != nil {
		return fmt.Errorf("error cleaning up Redis state: %v", err)
	}

	return nil
}
