package models

import (
	"gorm.io/gorm"
)

// Conversation is the unique chat thread between a prospective renter and a
// listing owner about one listing. The composite unique index makes a
// concurrent first-contact race surface as a duplicate-key insert instead of
// a second thread.
type Conversation struct {
	gorm.Model
	ListingID uint      `gorm:"not null;uniqueIndex:idx_conversation_triple" json:"listing_id"`
	RenterID  uint      `gorm:"not null;uniqueIndex:idx_conversation_triple" json:"renter_id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_conversation_triple" json:"owner_id"`
	Messages  []Message `json:"-"`
}

// HasParticipant reports whether userID is one of the two fixed parties.
func (conversation *Conversation) HasParticipant(userID uint) bool {
	return userID == conversation.RenterID || userID == conversation.OwnerID
}

// Counterpart returns the other party for userID. Callers must check
// membership first.
func (conversation *Conversation) Counterpart(userID uint) uint {
	if userID == conversation.RenterID {
		return conversation.OwnerID
	}
	return conversation.RenterID
}

// ConversationSummary is one row of a user's conversation list.
type ConversationSummary struct {
	Conversation    Conversation `json:"conversation"`
	CounterpartID   uint         `json:"counterpart_id"`
	CounterpartName string       `json:"counterpart_name"`
	ListingTitle    string       `json:"listing_title"`
	UnreadCount     int64        `json:"unread_count"`
}
