package domain

import "time"

// InboundMessage is the normalized view of one Telegram text message.
type InboundMessage struct {
	UpdateID     int64     `json:"update_id"`
	Username     string    `json:"username"`
	LanguageCode string    `json:"language_code"`
	ChatID       int64     `json:"chat_id"`
	Text         string    `json:"text"`
	ReceivedAt   time.Time `json:"received_at"`
}
