package model

type PointAward struct {
	AwardID   uint64 `gorm:"column:award_id;primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"column:user_id;not null;index"`
	Amount    int64  `gorm:"column:amount;not null"`
	Reason    string `gorm:"column:reason;type:text;not null"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
}

func (PointAward) TableName() string {
	return "point_awards"
}
