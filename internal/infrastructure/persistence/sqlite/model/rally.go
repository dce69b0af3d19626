package model

type Rally struct {
	RallyID         uint64 `gorm:"column:rally_id;primaryKey;autoIncrement"`
	Name            string `gorm:"column:name;type:text;not null"`
	Description     string `gorm:"column:description;type:text;not null"`
	AchieveCount    int64  `gorm:"column:achieve_count;not null;default:0"`
	PilgrimageCount int64  `gorm:"column:pilgrimage_count;not null;default:0"`
}

func (Rally) TableName() string {
	return "rallies"
}
