package models

import "time"

type Post struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	AuthorID uint64    `gorm:"not null" json:"author_id"`
	Created  time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Title    string    `gorm:"not null" json:"title"`
	Body     string    `gorm:"type:text;not null" json:"body"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "post"
}
