package model

type HashTag struct {
	EntryID uint64 `gorm:"column:entry_id;not null;primaryKey"`
	Tag     string `gorm:"column:tag;type:text;not null;primaryKey"`
}

func (HashTag) TableName() string {
	return "hashtags"
}
