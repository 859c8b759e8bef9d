package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

// RedisChannelChat carries every MessageAppendedEvent between processes.
const RedisChannelChat = "renthub_chat"

// EventHandler receives validated events for one conversation, in append
// order. Handlers run outside the hub lock; a blocking handler delays only
// its own dispatch pass, not the registry.
type EventHandler func(event models.MessageAppendedEvent)

// Subscription is the handle returned by Subscribe. After Cancel returns no
// new dispatch will pick the handler up; a dispatch already in flight may
// still deliver one event.
type Subscription struct {
	id             uuid.UUID
	conversationID uint
	handler        EventHandler
	hub            *Hub
}

func (sub *Subscription) ConversationID() uint {
	return sub.conversationID
}

func (sub *Subscription) Cancel() {
	sub.hub.Unsubscribe(sub)
}

// Hub fans newly appended messages out to subscribers filtered by
// conversation id. It is constructed once by the composition root and passed
// down explicitly; there is no package-level instance. The redis client
// bridges processes; with a nil client the hub degrades to in-process
// delivery, which is what the tests use.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint]map[uuid.UUID]*Subscription
	redis  *redis.Client
	logger *slog.Logger
}

func NewHub(redisClient *redis.Client, logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[uint]map[uuid.UUID]*Subscription),
		redis:  redisClient,
		logger: logger,
	}
}

// Subscribe registers a handler for one conversation. The channel never
// replays history; a subscriber that needs catch-up must read the message
// store.
func (h *Hub) Subscribe(conversationID uint, handler EventHandler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &Subscription{
		id:             uuid.New(),
		conversationID: conversationID,
		handler:        handler,
		hub:            h,
	}
	if _, ok := h.subs[conversationID]; !ok {
		h.subs[conversationID] = make(map[uuid.UUID]*Subscription)
	}
	h.subs[conversationID][sub.id] = sub
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	conversationSubs, ok := h.subs[sub.conversationID]
	if !ok {
		return
	}
	delete(conversationSubs, sub.id)
	if len(conversationSubs) == 0 {
		delete(h.subs, sub.conversationID)
	}
}

// PublishMessageAppended validates and publishes the event. With redis the
// event travels through the shared channel so every process fans it out;
// without redis it is dispatched to local subscribers directly.
func (h *Hub) PublishMessageAppended(ctx context.Context, message *models.Message) error {
	event := models.NewMessageAppendedEvent(message)
	if err := event.Validate(); err != nil {
		return err
	}
	if h.redis == nil {
		h.Dispatch(event)
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.redis.Publish(ctx, RedisChannelChat, payload).Err()
}

// Run pumps the redis channel into local subscribers until ctx is cancelled.
// Malformed payloads are dropped with a log line, never handed to handlers.
func (h *Hub) Run(ctx context.Context) error {
	if h.redis == nil {
		<-ctx.Done()
		return nil
	}
	pubsub := h.redis.Subscribe(ctx, RedisChannelChat)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event models.MessageAppendedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.logger.Error("dropping undecodable chat event", "error", err)
				continue
			}
			if err := event.Validate(); err != nil {
				h.logger.Error("dropping invalid chat event", "error", err, "conversation_id", event.ConversationID)
				continue
			}
			h.Dispatch(event)
		}
	}
}

// Dispatch delivers the event to every current subscriber of its
// conversation. The subscriber set is snapshotted under the lock and the
// handlers run outside it, so one slow subscriber (a stalled websocket
// write) never blocks Subscribe, Unsubscribe, or other conversations.
// Per-subscriber order still holds because all redis-fed dispatching happens
// on the single Run goroutine.
func (h *Hub) Dispatch(event models.MessageAppendedEvent) {
	h.mu.Lock()
	handlers := make([]EventHandler, 0, len(h.subs[event.ConversationID]))
	for _, sub := range h.subs[event.ConversationID] {
		handlers = append(handlers, sub.handler)
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// SubscriberCount reports current subscribers for a conversation.
func (h *Hub) SubscriberCount(conversationID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[conversationID])
}
