package models

import "time"

// Follow is a directed edge from follower to following. A given edge is
// unique and self-follows are rejected at the schema level; mutual follows
// are two independent edges.
type Follow struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	FollowerID  uint64    `gorm:"not null;uniqueIndex:idx_follower_following;check:follower_id <> following_id" json:"follower_id"`
	FollowingID uint64    `gorm:"not null;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	// Relations
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (Follow) TableName() string {
	return "user_follows"
}
