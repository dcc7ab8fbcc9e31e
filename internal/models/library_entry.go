package models

import "time"

// LibraryEntry records that a user owns a game, with the playtime observed
// at import time. At most one row per (user, game) pair; re-imports update
// in place.
type LibraryEntry struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	UserID          uint64    `gorm:"not null;uniqueIndex:idx_user_game" json:"user_id"`
	GameID          uint64    `gorm:"not null;uniqueIndex:idx_user_game" json:"game_id"`
	PlaytimeForever int64     `gorm:"not null;default:0" json:"playtime_forever"`
	ImportedAt      time.Time `gorm:"not null;autoCreateTime" json:"imported_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

func (LibraryEntry) TableName() string {
	return "user_game_library"
}
