package model

type VisitedPilgrimage struct {
	VisitID      uint64 `gorm:"column:visit_id;primaryKey;autoIncrement"`
	UserID       uint64 `gorm:"column:user_id;not null;index:idx_visits_user"`
	PilgrimageID uint64 `gorm:"column:pilgrimage_id;not null;index:idx_visits_user"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (VisitedPilgrimage) TableName() string {
	return "visited_pilgrimages"
}
