package model

type Pilgrimage struct {
	PilgrimageID uint64 `gorm:"column:pilgrimage_id;primaryKey;autoIncrement"`
	RallyID      uint64 `gorm:"column:rally_id;not null;index"`
	Name         string `gorm:"column:name;type:text;not null"`
	Address      string `gorm:"column:address;type:text;not null"`
	VisitCount   int64  `gorm:"column:visit_count;not null;default:0"`
}

func (Pilgrimage) TableName() string {
	return "pilgrimages"
}
