package model

type LikedEntry struct {
	EntryID uint64 `gorm:"column:entry_id;not null;primaryKey"`
	UserID  uint64 `gorm:"column:user_id;not null;primaryKey"`
}

func (LikedEntry) TableName() string {
	return "liked_entries"
}
