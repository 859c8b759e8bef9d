package models

import (
	"gorm.io/gorm"
)

// Message is immutable once stored except for the read flag, which flips
// false to true exactly once when the recipient displays it.
type Message struct {
	gorm.Model
	ConversationID uint         `gorm:"not null;index" json:"conversation_id"`
	Conversation   Conversation `json:"-"`
	SenderID       uint         `gorm:"not null" json:"sender_id"`
	RecipientID    uint         `gorm:"not null" json:"recipient_id"`
	Body           string       `gorm:"not null" json:"body"`
	Read           bool         `gorm:"not null;default:false" json:"read"`
}
