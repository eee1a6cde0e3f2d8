package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameMap' is one entry of the map catalog. Clients refer to maps by
 * the short code; match records keep the numeric ID.
 */
type GameMap struct {
	ID     uint           `gorm:"primaryKey;autoIncrement"`
	Code   string         `gorm:"size:20;not null;uniqueIndex:idx_game_maps_code"`
	Name   string         `gorm:"size:100"`
	Layout datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
