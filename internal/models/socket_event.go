package models

import (
	"encoding/json"
)

// SocketEvent is the envelope read from a connected chat client.
type SocketEvent struct {
	Event          string          `json:"event"`
	Payload        json.RawMessage `json:"payload"`
	ConversationID uint            `json:"conversation_id"`
}

type SendMessagePayload struct {
	Body string `json:"body"`
}

type SeenMessagePayload struct {
	MessageIds []uint `json:"message_ids"`
}
