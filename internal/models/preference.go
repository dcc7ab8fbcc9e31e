package models

// UserPreference is a weighted tag a user wants recommendations for.
type UserPreference struct {
	ID     uint64  `gorm:"primarykey" json:"id"`
	UserID uint64  `gorm:"not null;uniqueIndex:idx_user_tag" json:"user_id"`
	Tag    string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_tag" json:"tag"`
	Weight float64 `gorm:"not null;default:1" json:"weight"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// GameTag attaches a vocabulary tag to a game.
type GameTag struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	GameID uint64 `gorm:"not null;uniqueIndex:idx_game_tag" json:"game_id"`
	Tag    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_game_tag" json:"tag"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GameTag) TableName() string {
	return "game_tag"
}
