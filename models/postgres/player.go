package postgres

import (
	"time"
)

/*
 * 'Player' is a registered game client. Registration mints the numeric
 * ID together with a secret key; only the bcrypt hash of the key is
 * stored. There are no usernames, the ID is the whole identity.
 */
type Player struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	KeyHash   string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Matches []*MatchPlayer `gorm:"foreignKey:PlayerID"`
}
