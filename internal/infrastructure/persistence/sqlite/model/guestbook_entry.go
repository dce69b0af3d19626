package model

type GuestbookEntry struct {
	EntryID      uint64 `gorm:"column:entry_id;primaryKey;autoIncrement"`
	UserID       uint64 `gorm:"column:user_id;not null;index"`
	PilgrimageID uint64 `gorm:"column:pilgrimage_id;not null;index"`
	Title        string `gorm:"column:title;type:text;not null"`
	Body         string `gorm:"column:body;type:text;not null"`
	ViewCount    int64  `gorm:"column:view_count;not null;default:0"`
	LikeCount    int64  `gorm:"column:like_count;not null;default:0"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt    string `gorm:"column:updated_at;type:text;not null"`
}

func (GuestbookEntry) TableName() string {
	return "guestbook_entries"
}
