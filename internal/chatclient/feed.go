package chatclient

import (
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/realtime"
)

// HubFeed plugs an in-process hub straight into a session. Used when client
// and server share a process, and by the tests.
type HubFeed struct {
	Hub *realtime.Hub
}

func (f HubFeed) Subscribe(conversationID uint, handler func(models.MessageAppendedEvent)) (Subscription, error) {
	return f.Hub.Subscribe(conversationID, realtime.EventHandler(handler)), nil
}
