package model

type Image struct {
	ImageID    uint64 `gorm:"column:image_id;primaryKey;autoIncrement"`
	EntryID    uint64 `gorm:"column:entry_id;not null;index"`
	StorageRef string `gorm:"column:storage_ref;type:text;not null"`
	URL        string `gorm:"column:url;type:text;not null"`
}

func (Image) TableName() string {
	return "images"
}
