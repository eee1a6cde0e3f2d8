package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// Match status values. NEW matches wait for a second player; terminal
// matches (ENDED, FORFEIT) never change status again.
const (
	MatchStatusNew        = "NEW"
	MatchStatusInProgress = "IN_PROGRESS"
	MatchStatusEnded      = "ENDED"
	MatchStatusForfeit    = "FORFEIT"
)

/*
 * 'Match' is a single two-player match. Players locate it through the
 * short join code; the numeric ID is internal. The live board state
 * lives in Redis while the match runs; FinalState keeps a durable copy
 * once the match terminates.
 */
type Match struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	JoinCode   string         `gorm:"size:10;not null;uniqueIndex:idx_matches_join_code"`
	MapID      uint           `gorm:"not null;index:idx_matches_map"`
	Status     string         `gorm:"size:20;not null;default:'NEW';index:idx_matches_status"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	FinalState datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Map     GameMap        `gorm:"foreignKey:MapID"`
	Players []*MatchPlayer `gorm:"foreignKey:MatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (m *Match) IsTerminal() bool {
	return m.Status == MatchStatusEnded || m.Status == MatchStatusForfeit
}
