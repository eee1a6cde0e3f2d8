package postgres

// Sides a participant can occupy. A match never holds more than one
// player per side.
const (
	SideBlue = "BLUE"
	SideRed  = "RED"
)

// Per-participant status values. While a match is in progress exactly
// one participant is ACTIVE; the terminal values record the outcome.
const (
	PlayerStatusActive    = "ACTIVE"
	PlayerStatusInactive  = "INACTIVE"
	PlayerStatusWin       = "WIN"
	PlayerStatusLoss      = "LOSS"
	PlayerStatusDismissed = "DISMISSED"
)

/*
 * 'MatchPlayer' represents one participant slot in a match. The
 * composite primary key makes (match, player) unique and the side index
 * makes (match, side) unique, so double-joins fail at the database even
 * if two requests race past the engine's checks.
 */
type MatchPlayer struct {
	// NOTE: composite primary key definition
	MatchID  uint   `gorm:"primaryKey;not null;uniqueIndex:idx_match_players_side"`
	PlayerID uint   `gorm:"primaryKey;not null;index"`
	Side     string `gorm:"size:10;not null;uniqueIndex:idx_match_players_side"`
	Status   string `gorm:"size:20;not null;default:'ACTIVE'"`

	// Relationships
	Match  Match  `gorm:"foreignKey:MatchID"`
	Player Player `gorm:"foreignKey:PlayerID"`
}

// OtherSide returns the opposing side, or "" for an unknown side value.
func OtherSide(side string) string {
	switch side {
	case SideBlue:
		return SideRed
	case SideRed:
		return SideBlue
	}
	return ""
}

func IsValidSide(side string) bool {
	return side == SideBlue || side == SideRed
}
