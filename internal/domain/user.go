package domain

import "time"

type User struct {
	ID               int64     `json:"id"`
	TelegramUsername string    `json:"telegram_username"`
	Language         string    `json:"language"`
	Timezone         string    `json:"timezone"`
	RegisteredAt     time.Time `json:"registered_at"`
}
