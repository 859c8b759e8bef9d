package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/enums"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
)

func validEventMessage() *Message {
	return &Message{
		Model:          gorm.Model{ID: 5},
		ConversationID: 7,
		SenderID:       1,
		RecipientID:    2,
		Body:           "hello",
	}
}

func TestNewMessageAppendedEvent(t *testing.T) {
	message := validEventMessage()
	event := NewMessageAppendedEvent(message)

	assert.Equal(t, enums.SOCKET_EVENT_MESSAGE_APPENDED, event.Event)
	assert.Equal(t, message.ConversationID, event.ConversationID)
	require.NoError(t, event.Validate())
}

func TestMessageAppendedEventValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(event *MessageAppendedEvent)
	}{
		{"wrong tag", func(e *MessageAppendedEvent) { e.Event = "something_else" }},
		{"nil message", func(e *MessageAppendedEvent) { e.Message = nil }},
		{"unsaved message", func(e *MessageAppendedEvent) { e.Message.ID = 0 }},
		{"zero conversation", func(e *MessageAppendedEvent) {
			e.ConversationID = 0
			e.Message.ConversationID = 0
		}},
		{"mis-scoped message", func(e *MessageAppendedEvent) { e.Message.ConversationID = 99 }},
		{"missing sender", func(e *MessageAppendedEvent) { e.Message.SenderID = 0 }},
		{"missing recipient", func(e *MessageAppendedEvent) { e.Message.RecipientID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := NewMessageAppendedEvent(validEventMessage())
			tc.mutate(&event)
			assert.ErrorIs(t, event.Validate(), errs.ErrInvalidEventPayload)
		})
	}
}

func TestConversationParticipants(t *testing.T) {
	conversation := &Conversation{RenterID: 1, OwnerID: 2}

	assert.True(t, conversation.HasParticipant(1))
	assert.True(t, conversation.HasParticipant(2))
	assert.False(t, conversation.HasParticipant(3))

	assert.Equal(t, uint(2), conversation.Counterpart(1))
	assert.Equal(t, uint(1), conversation.Counterpart(2))
}
