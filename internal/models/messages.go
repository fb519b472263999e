package models

import "time"

// ChatMessage is one entry of a wish's chat thread. Immutable once created.
type ChatMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
