package chatclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

// SocketFeed subscribes over the websocket chat route of a remote server.
// Each Subscribe call dials its own connection scoped to one conversation.
type SocketFeed struct {
	BaseURL string // ws://host:port
	Token   string
	Logger  *slog.Logger
}

type socketSubscription struct {
	conn   *websocket.Conn
	once   sync.Once
	closed chan struct{}
}

func (sub *socketSubscription) Cancel() {
	sub.once.Do(func() {
		close(sub.closed)
		sub.conn.Close()
	})
}

func (f *SocketFeed) Subscribe(conversationID uint, handler func(models.MessageAppendedEvent)) (Subscription, error) {
	url := fmt.Sprintf("%s/ws/chat?conversationId=%d", f.BaseURL, conversationID)
	header := http.Header{}
	header.Set("Authorization", f.Token)

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, err
	}

	sub := &socketSubscription{
		conn:   conn,
		closed: make(chan struct{}),
	}
	go f.readLoop(sub, handler)
	return sub, nil
}

func (f *SocketFeed) readLoop(sub *socketSubscription, handler func(models.MessageAppendedEvent)) {
	for {
		var event models.MessageAppendedEvent
		if err := sub.conn.ReadJSON(&event); err != nil {
			select {
			case <-sub.closed:
			default:
				f.Logger.Warn("chat feed disconnected", "error", err)
			}
			return
		}
		if err := event.Validate(); err != nil {
			// Non-append frames (seen notifications etc) are not ours.
			continue
		}
		select {
		case <-sub.closed:
			return
		default:
			handler(event)
		}
	}
}
