package models

import "time"

// Game platforms. The appid is unique across the whole table, so importers
// for non-Steam storefronts must namespace their ids (see internal/epic).
const (
	PlatformSteam = "steam"
	PlatformEpic  = "epic"
)

// Game is a shared catalog entity, populated lazily as users import
// libraries that mention it. Nobody owns a game row; library entries
// reference it.
type Game struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	AppID           string    `gorm:"column:appid;type:varchar(255);uniqueIndex;not null" json:"appid"`
	Name            string    `gorm:"not null" json:"name"`
	Platform        string    `gorm:"type:varchar(50);not null;default:steam" json:"platform"`
	PlaytimeForever int64     `gorm:"not null;default:0" json:"playtime_forever"`
	ImgIconURL      string    `gorm:"column:img_icon_url" json:"img_icon_url"`
	ImgLogoURL      string    `gorm:"column:img_logo_url" json:"img_logo_url"`
	Created         time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
}

func (Game) TableName() string {
	return "game"
}
