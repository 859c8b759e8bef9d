package realtime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

func newTestHub() *Hub {
	return NewHub(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testMessage(id, conversationID uint) *models.Message {
	return &models.Message{
		Model:          gorm.Model{ID: id},
		ConversationID: conversationID,
		SenderID:       1,
		RecipientID:    2,
		Body:           "hello",
	}
}

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := newTestHub()

	var received []models.MessageAppendedEvent
	sub := hub.Subscribe(7, func(event models.MessageAppendedEvent) {
		received = append(received, event)
	})
	defer sub.Cancel()

	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(1, 7)))
	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(2, 7)))

	require.Len(t, received, 2)
	assert.Equal(t, uint(1), received[0].Message.ID)
	assert.Equal(t, uint(2), received[1].Message.ID)
	assert.Equal(t, uint(7), received[0].ConversationID)
}

func TestHubScopesByConversation(t *testing.T) {
	hub := newTestHub()

	var forSeven, forEight int
	subSeven := hub.Subscribe(7, func(models.MessageAppendedEvent) { forSeven++ })
	defer subSeven.Cancel()
	subEight := hub.Subscribe(8, func(models.MessageAppendedEvent) { forEight++ })
	defer subEight.Cancel()

	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(1, 7)))

	assert.Equal(t, 1, forSeven)
	assert.Equal(t, 0, forEight)
}

func TestHubDoesNotReplayForLateSubscriber(t *testing.T) {
	hub := newTestHub()

	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(1, 7)))

	var received int
	sub := hub.Subscribe(7, func(models.MessageAppendedEvent) { received++ })
	defer sub.Cancel()

	assert.Equal(t, 0, received)

	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(2, 7)))
	assert.Equal(t, 1, received)
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := newTestHub()

	var received int
	sub := hub.Subscribe(7, func(models.MessageAppendedEvent) { received++ })
	require.Equal(t, 1, hub.SubscriberCount(7))

	sub.Cancel()
	assert.Equal(t, 0, hub.SubscriberCount(7))

	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(1, 7)))
	assert.Equal(t, 0, received)

	// Double cancel is a no-op.
	sub.Cancel()
}

func TestHubRejectsInvalidEvents(t *testing.T) {
	hub := newTestHub()

	var received int
	sub := hub.Subscribe(7, func(models.MessageAppendedEvent) { received++ })
	defer sub.Cancel()

	// Unsaved message (zero id).
	unsaved := testMessage(0, 7)
	err := hub.PublishMessageAppended(context.Background(), unsaved)
	assert.ErrorIs(t, err, errs.ErrInvalidEventPayload)

	// Missing recipient.
	broken := testMessage(1, 7)
	broken.RecipientID = 0
	err = hub.PublishMessageAppended(context.Background(), broken)
	assert.ErrorIs(t, err, errs.ErrInvalidEventPayload)

	assert.Equal(t, 0, received)
}

func TestHubSlowSubscriberDoesNotStallHub(t *testing.T) {
	hub := newTestHub()

	started := make(chan struct{})
	release := make(chan struct{})
	slow := hub.Subscribe(7, func(models.MessageAppendedEvent) {
		close(started)
		<-release
	})
	defer slow.Cancel()
	defer close(release)

	go func() {
		_ = hub.PublishMessageAppended(context.Background(), testMessage(1, 7))
	}()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("dispatch never reached the subscriber")
	}

	// With one subscriber stuck mid-handler, the registry and other
	// conversations keep moving.
	var received int
	other := hub.Subscribe(8, func(models.MessageAppendedEvent) { received++ })
	defer other.Cancel()
	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(2, 8)))
	assert.Equal(t, 1, received)
	assert.Equal(t, 1, hub.SubscriberCount(7))
}

func TestHubMultipleSubscribersSameConversation(t *testing.T) {
	hub := newTestHub()

	var first, second int
	subOne := hub.Subscribe(7, func(models.MessageAppendedEvent) { first++ })
	defer subOne.Cancel()
	subTwo := hub.Subscribe(7, func(models.MessageAppendedEvent) { second++ })

	require.Equal(t, 2, hub.SubscriberCount(7))
	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(1, 7)))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	subTwo.Cancel()
	require.NoError(t, hub.PublishMessageAppended(context.Background(), testMessage(2, 7)))
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second)
}
