package model

type User struct {
	UserID   uint64 `gorm:"column:user_id;primaryKey;autoIncrement"`
	Nickname string `gorm:"column:nickname;type:text;not null;uniqueIndex"`
	Points   int64  `gorm:"column:points;not null;default:0"`
}

func (User) TableName() string {
	return "users"
}
