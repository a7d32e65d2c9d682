package domain

import "time"

// Token — непрозрачный ключ доступа, привязанный к одному пользователю (1:1).
// Создаётся при регистрации или при первом входе и больше не меняется.
type Token struct {
	Key       string    `db:"key" gorm:"primaryKey;column:key"`
	UserID    int64     `db:"user_id" gorm:"column:user_id"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

func (Token) TableName() string {
	return "tokens"
}
