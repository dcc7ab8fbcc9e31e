package models

// User is the root entity; posts, library entries and follow edges all hang
// off it and are removed with it (ON DELETE CASCADE).
type User struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Username string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	// Password holds the bcrypt hash. The column keeps the schema's name;
	// plaintext is never stored.
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	// Relations
	Posts     []Post         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Library   []LibraryEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Following []Follow       `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followers []Follow       `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "user"
}
