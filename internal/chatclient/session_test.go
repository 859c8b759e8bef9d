package chatclient

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

var errTransient = errors.New("transient backend failure")

// fakeChatAPI backs a session with an in-memory message list. Each saved
// message also reaches the fake feed, the same path the hub provides.
type fakeChatAPI struct {
	mu        sync.Mutex
	messages  map[uint]*models.Message
	nextID    uint
	clock     time.Time
	feed      *fakeFeed
	failFetch int
	markCalls []uint
	markAll   int
	failMark  int
}

func newFakeChatAPI(feed *fakeFeed) *fakeChatAPI {
	return &fakeChatAPI{
		messages: make(map[uint]*models.Message),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		feed:     feed,
	}
}

func (f *fakeChatAPI) appendLocked(conversationID, senderID, recipientID uint, body string) *models.Message {
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	message := &models.Message{
		Model:          gorm.Model{ID: f.nextID, CreatedAt: f.clock},
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Body:           body,
	}
	f.messages[message.ID] = message
	return message
}

// seed stores a message without emitting a feed event, simulating writes that
// happened before the session subscribed.
func (f *fakeChatAPI) seed(conversationID, senderID, recipientID uint, body string) *models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(conversationID, senderID, recipientID, body)
}

// appendRemote stores a message and emits it on the feed, simulating the
// counterpart sending while the session is live.
func (f *fakeChatAPI) appendRemote(conversationID, senderID, recipientID uint, body string) *models.Message {
	f.mu.Lock()
	message := f.appendLocked(conversationID, senderID, recipientID, body)
	f.mu.Unlock()
	f.feed.emit(models.NewMessageAppendedEvent(message))
	return message
}

func (f *fakeChatAPI) FetchHistory(conversationID uint) ([]models.Message, []error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch > 0 {
		f.failFetch--
		return nil, []error{errTransient}
	}
	var out []models.Message
	for _, message := range f.messages {
		if message.ConversationID == conversationID {
			out = append(out, *message)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeChatAPI) SendMessage(_ context.Context, conversationID, senderID, recipientID uint, body string) (*models.Message, []error) {
	f.mu.Lock()
	message := f.appendLocked(conversationID, senderID, recipientID, body)
	saved := *message
	f.mu.Unlock()
	f.feed.emit(models.NewMessageAppendedEvent(&saved))
	return &saved, nil
}

func (f *fakeChatAPI) MarkMessageRead(messageID, userID uint) []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMark > 0 {
		f.failMark--
		return []error{errTransient}
	}
	message, ok := f.messages[messageID]
	if !ok {
		return []error{errs.ErrMessageNotFound}
	}
	if message.RecipientID != userID {
		return []error{errs.ErrNotConversationParticipant}
	}
	message.Read = true
	f.markCalls = append(f.markCalls, messageID)
	return nil
}

func (f *fakeChatAPI) MarkAllReadForUser(conversationID, userID uint) []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, message := range f.messages {
		if message.ConversationID == conversationID && message.RecipientID == userID {
			message.Read = true
		}
	}
	f.markAll++
	return nil
}

func (f *fakeChatAPI) markedMessageIDs() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint, len(f.markCalls))
	copy(out, f.markCalls)
	return out
}

type fakeFeed struct {
	mu       sync.Mutex
	handlers map[int]func(models.MessageAppendedEvent)
	nextID   int
	convID   uint
	failNext bool
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{handlers: make(map[int]func(models.MessageAppendedEvent))}
}

func (f *fakeFeed) Subscribe(conversationID uint, handler func(models.MessageAppendedEvent)) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return nil, errTransient
	}
	f.nextID++
	id := f.nextID
	f.convID = conversationID
	f.handlers[id] = handler
	return &fakeSubscription{feed: f, id: id}, nil
}

func (f *fakeFeed) emit(event models.MessageAppendedEvent) {
	f.mu.Lock()
	handlers := make([]func(models.MessageAppendedEvent), 0, len(f.handlers))
	for _, handler := range f.handlers {
		handlers = append(handlers, handler)
	}
	f.mu.Unlock()
	for _, handler := range handlers {
		handler(event)
	}
}

func (f *fakeFeed) subscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

type fakeSubscription struct {
	feed *fakeFeed
	id   int
}

func (s *fakeSubscription) Cancel() {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	delete(s.feed.handlers, s.id)
}

const (
	sessionUser  = uint(1)
	counterpart  = uint(2)
	conversation = uint(40)
)

func newSessionFixture(t *testing.T, notify Notifier) (*Session, *fakeChatAPI, *fakeFeed) {
	t.Helper()
	feed := newFakeFeed()
	api := newFakeChatAPI(feed)
	thread := models.Conversation{
		Model:     gorm.Model{ID: conversation},
		ListingID: 10,
		RenterID:  sessionUser,
		OwnerID:   counterpart,
	}
	return NewSession(api, feed, thread, sessionUser, notify), api, feed
}

func TestSessionOpenLoadsHistoryAndMarksRead(t *testing.T) {
	session, api, _ := newSessionFixture(t, nil)
	api.seed(conversation, counterpart, sessionUser, "first")
	api.seed(conversation, sessionUser, counterpart, "second")

	require.Equal(t, StateClosed, session.State())
	require.NoError(t, session.Open())
	assert.Equal(t, StateLive, session.State())

	messages := session.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Body)
	assert.Equal(t, "second", messages[1].Body)

	// The incoming message is marked read on open, locally and upstream.
	assert.True(t, messages[0].Read)
	assert.Equal(t, 1, api.markAll)

	// Open while live is a no-op.
	require.NoError(t, session.Open())
	assert.Equal(t, 1, api.markAll)
}

func TestSessionMergesLiveEventsAndMarksRead(t *testing.T) {
	session, api, _ := newSessionFixture(t, nil)
	require.NoError(t, session.Open())

	incoming := api.appendRemote(conversation, counterpart, sessionUser, "anyone there?")

	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, incoming.ID, messages[0].ID)
	assert.True(t, messages[0].Read)
	assert.Equal(t, []uint{incoming.ID}, api.markedMessageIDs())
}

func TestSessionSendDedupesSelfEcho(t *testing.T) {
	session, api, _ := newSessionFixture(t, nil)
	require.NoError(t, session.Open())

	saved, err := session.Send(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, saved)

	// The send merged the saved message and the feed echoed the same id; the
	// list holds it once.
	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, saved.ID, messages[0].ID)

	// Own messages are never marked read.
	assert.Empty(t, api.markedMessageIDs())
}

func TestSessionSendRequiresLive(t *testing.T) {
	session, _, _ := newSessionFixture(t, nil)

	_, err := session.Send(context.Background(), "too early")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestSessionEventsDuringLoadAreMerged(t *testing.T) {
	// A message that lands between subscribe and the end of the history fetch
	// arrives both as an event and in the refetched history; the id dedup
	// keeps one copy.
	session, api, feed := newSessionFixture(t, nil)
	require.NoError(t, session.Open())

	message := api.seed(conversation, counterpart, sessionUser, "raced")
	feed.emit(models.NewMessageAppendedEvent(message))
	require.NoError(t, session.Reconnect())

	ids := make(map[uint]int)
	for _, m := range session.Messages() {
		ids[m.ID]++
	}
	assert.Equal(t, 1, ids[message.ID])
}

func TestSessionOpenFetchFailureStaysLoading(t *testing.T) {
	var notified []error
	session, api, _ := newSessionFixture(t, func(err error) { notified = append(notified, err) })
	api.seed(conversation, counterpart, sessionUser, "first")
	api.failFetch = 1

	err := session.Open()
	require.Error(t, err)
	assert.Equal(t, StateLoading, session.State())
	require.Len(t, notified, 1)
	assert.ErrorIs(t, notified[0], errTransient)

	// Retrying the open completes the load.
	require.NoError(t, session.Open())
	assert.Equal(t, StateLive, session.State())
	assert.Len(t, session.Messages(), 1)
}

func TestSessionSubscribeFailureIsRetryable(t *testing.T) {
	session, _, feed := newSessionFixture(t, nil)
	feed.failNext = true

	err := session.Open()
	require.Error(t, err)
	// The state machine advanced to Loading; a retry succeeds.
	require.NoError(t, session.Open())
	assert.Equal(t, StateLive, session.State())
}

func TestSessionCloseDropsLateEvents(t *testing.T) {
	session, api, feed := newSessionFixture(t, nil)
	require.NoError(t, session.Open())
	require.Equal(t, 1, feed.subscriberCount())

	session.Close()
	assert.Equal(t, StateClosed, session.State())
	assert.Equal(t, 0, feed.subscriberCount())

	// An event that slips through anyway is dropped.
	message := api.seed(conversation, counterpart, sessionUser, "late")
	session.handleEvent(models.NewMessageAppendedEvent(message))
	assert.Empty(t, session.Messages())

	// Close is idempotent and Open restarts cleanly.
	session.Close()
	require.NoError(t, session.Open())
	assert.Equal(t, StateLive, session.State())
	assert.Len(t, session.Messages(), 1)
}

func TestSessionReconnectClosesEventGap(t *testing.T) {
	session, api, feed := newSessionFixture(t, nil)
	require.NoError(t, session.Open())

	// Drop the subscription behind the session's back, then let a message go
	// by unseen.
	feed.mu.Lock()
	feed.handlers = make(map[int]func(models.MessageAppendedEvent))
	feed.mu.Unlock()
	missed := api.seed(conversation, counterpart, sessionUser, "missed you")

	require.NoError(t, session.Reconnect())
	require.Equal(t, 1, feed.subscriberCount())

	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, missed.ID, messages[0].ID)

	// Events flow again after the reconnect.
	api.appendRemote(conversation, counterpart, sessionUser, "back online")
	assert.Len(t, session.Messages(), 2)
}

func TestSessionMarkReadRetriesOnce(t *testing.T) {
	var notified []error
	session, api, _ := newSessionFixture(t, func(err error) { notified = append(notified, err) })
	require.NoError(t, session.Open())

	api.failMark = 1
	incoming := api.appendRemote(conversation, counterpart, sessionUser, "flaky")

	// First attempt failed, the retry landed, no user-facing report.
	assert.Equal(t, []uint{incoming.ID}, api.markedMessageIDs())
	assert.Empty(t, notified)

	api.failMark = 2
	api.appendRemote(conversation, counterpart, sessionUser, "down")
	require.Len(t, notified, 1)
	assert.ErrorIs(t, notified[0], errTransient)
}
