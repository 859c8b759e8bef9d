package models

import (
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/enums"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
)

// MessageAppendedEvent is the only payload crossing the realtime channel for
// new messages. It is validated before fan-out so subscriber callbacks never
// see a malformed or mis-scoped message.
type MessageAppendedEvent struct {
	Event          string   `json:"event"`
	ConversationID uint     `json:"conversation_id"`
	Message        *Message `json:"message"`
}

func NewMessageAppendedEvent(message *Message) MessageAppendedEvent {
	return MessageAppendedEvent{
		Event:          enums.SOCKET_EVENT_MESSAGE_APPENDED,
		ConversationID: message.ConversationID,
		Message:        message,
	}
}

func (event *MessageAppendedEvent) Validate() error {
	if event.Event != enums.SOCKET_EVENT_MESSAGE_APPENDED {
		return errs.ErrInvalidEventPayload
	}
	if event.Message == nil || event.Message.ID == 0 {
		return errs.ErrInvalidEventPayload
	}
	if event.ConversationID == 0 || event.Message.ConversationID != event.ConversationID {
		return errs.ErrInvalidEventPayload
	}
	if event.Message.SenderID == 0 || event.Message.RecipientID == 0 {
		return errs.ErrInvalidEventPayload
	}
	return nil
}
