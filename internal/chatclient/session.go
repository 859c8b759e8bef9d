package chatclient

import (
	"context"
	"sort"
	"sync"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

type State int

const (
	StateClosed State = iota
	StateLoading
	StateLive
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	default:
		return "closed"
	}
}

// ChatAPI is the slice of the messaging core a session talks to.
type ChatAPI interface {
	FetchHistory(conversationID uint) ([]models.Message, []error)
	SendMessage(ctx context.Context, conversationID, senderID, recipientID uint, body string) (*models.Message, []error)
	MarkMessageRead(messageID, userID uint) []error
	MarkAllReadForUser(conversationID, userID uint) []error
}

// Subscription is a live feed handle. Cancel stops future delivery; an event
// already in flight may still arrive and is dropped by the closed session.
type Subscription interface {
	Cancel()
}

// Feed delivers appended-message events for one conversation.
type Feed interface {
	Subscribe(conversationID uint, handler func(models.MessageAppendedEvent)) (Subscription, error)
}

// Notifier surfaces non-fatal failures to the user. A nil notifier drops
// them.
type Notifier func(err error)

// Session is the interactive chat surface for one user in one conversation:
// it loads history, subscribes to the feed, keeps an ordered in-memory
// message list deduplicated by id, marks incoming messages read, and tears
// the subscription down on Close.
//
// Failures never advance the state machine; the session stays where it is
// and the user retries.
type Session struct {
	mu           sync.Mutex
	state        State
	api          ChatAPI
	feed         Feed
	conversation models.Conversation
	userID       uint
	messages     []models.Message
	index        map[uint]int
	sub          Subscription
	notify       Notifier
}

func NewSession(api ChatAPI, feed Feed, conversation models.Conversation, userID uint, notify Notifier) *Session {
	return &Session{
		state:        StateClosed,
		api:          api,
		feed:         feed,
		conversation: conversation,
		userID:       userID,
		index:        make(map[uint]int),
		notify:       notify,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the ordered in-memory list.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Open drives Closed -> Loading -> Live. Calling it again while still in
// Loading retries the history fetch. The subscription is established before
// the fetch, so messages appended during the fetch arrive as events and are
// merged by id.
func (s *Session) Open() error {
	s.mu.Lock()
	switch s.state {
	case StateLive:
		s.mu.Unlock()
		return nil
	case StateClosed:
		s.state = StateLoading
		s.messages = nil
		s.index = make(map[uint]int)
	}
	needSub := s.sub == nil
	s.mu.Unlock()

	if needSub {
		sub, err := s.feed.Subscribe(s.conversation.ID, s.handleEvent)
		if err != nil {
			s.report(err)
			return err
		}
		s.mu.Lock()
		if s.state == StateClosed {
			// Closed while subscribing, undo.
			s.mu.Unlock()
			sub.Cancel()
			return nil
		}
		s.sub = sub
		s.mu.Unlock()
	}

	history, fetchErrs := s.api.FetchHistory(s.conversation.ID)
	if len(fetchErrs) > 0 {
		s.report(fetchErrs[0])
		return fetchErrs[0]
	}

	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return nil
	}
	for i := range history {
		s.mergeLocked(history[i])
	}
	s.state = StateLive
	s.mu.Unlock()

	s.markAllRead()
	return nil
}

// Send appends a message as the current user. The saved message is merged
// into the local list immediately; the self-echo from the feed is then a
// duplicate id and gets dropped.
func (s *Session) Send(ctx context.Context, body string) (*models.Message, error) {
	s.mu.Lock()
	if s.state != StateLive {
		s.mu.Unlock()
		return nil, errs.ErrInvalidRequest
	}
	recipientID := s.conversation.Counterpart(s.userID)
	s.mu.Unlock()

	saved, sendErrs := s.api.SendMessage(ctx, s.conversation.ID, s.userID, recipientID, body)
	if len(sendErrs) > 0 {
		s.report(sendErrs[0])
		return nil, sendErrs[0]
	}

	s.mu.Lock()
	if s.state != StateClosed {
		s.mergeLocked(*saved)
	}
	s.mu.Unlock()
	return saved, nil
}

// Reconnect rebuilds a dropped subscription and closes the event gap with one
// full history refetch, since the feed never replays.
func (s *Session) Reconnect() error {
	s.mu.Lock()
	if s.state != StateLive {
		s.mu.Unlock()
		return errs.ErrInvalidRequest
	}
	old := s.sub
	s.sub = nil
	s.mu.Unlock()

	if old != nil {
		old.Cancel()
	}
	sub, err := s.feed.Subscribe(s.conversation.ID, s.handleEvent)
	if err != nil {
		s.report(err)
		return err
	}
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		sub.Cancel()
		return nil
	}
	s.sub = sub
	s.mu.Unlock()

	history, fetchErrs := s.api.FetchHistory(s.conversation.ID)
	if len(fetchErrs) > 0 {
		s.report(fetchErrs[0])
		return fetchErrs[0]
	}
	s.mu.Lock()
	if s.state != StateClosed {
		for i := range history {
			s.mergeLocked(history[i])
		}
	}
	s.mu.Unlock()
	return nil
}

// Close tears the subscription down. Terminal but re-enterable: a fresh Open
// starts a new Loading pass. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (s *Session) handleEvent(event models.MessageAppendedEvent) {
	if event.Message == nil {
		return
	}
	s.mu.Lock()
	if s.state == StateClosed {
		// Late delivery after navigation away, drop it.
		s.mu.Unlock()
		return
	}
	added := s.mergeLocked(*event.Message)
	s.mu.Unlock()

	if added && event.Message.RecipientID == s.userID && !event.Message.Read {
		s.markReadWithRetry(event.Message.ID)
	}
}

// mergeLocked inserts the message in (created_at, id) order, ignoring ids
// already present. Returns true when the message was new.
func (s *Session) mergeLocked(message models.Message) bool {
	if _, ok := s.index[message.ID]; ok {
		return false
	}
	pos := sort.Search(len(s.messages), func(i int) bool {
		if s.messages[i].CreatedAt.Equal(message.CreatedAt) {
			return s.messages[i].ID > message.ID
		}
		return s.messages[i].CreatedAt.After(message.CreatedAt)
	})
	s.messages = append(s.messages, models.Message{})
	copy(s.messages[pos+1:], s.messages[pos:])
	s.messages[pos] = message
	for i := pos; i < len(s.messages); i++ {
		s.index[s.messages[i].ID] = i
	}
	return true
}

func (s *Session) markAllRead() {
	if markErrs := s.api.MarkAllReadForUser(s.conversation.ID, s.userID); len(markErrs) > 0 {
		// Idempotent, safe to retry once.
		if retryErrs := s.api.MarkAllReadForUser(s.conversation.ID, s.userID); len(retryErrs) > 0 {
			s.report(retryErrs[0])
			return
		}
	}
	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].RecipientID == s.userID {
			s.messages[i].Read = true
		}
	}
	s.mu.Unlock()
}

func (s *Session) markReadWithRetry(messageID uint) {
	if markErrs := s.api.MarkMessageRead(messageID, s.userID); len(markErrs) > 0 {
		if retryErrs := s.api.MarkMessageRead(messageID, s.userID); len(retryErrs) > 0 {
			s.report(retryErrs[0])
			return
		}
	}
	s.mu.Lock()
	if pos, ok := s.index[messageID]; ok {
		s.messages[pos].Read = true
	}
	s.mu.Unlock()
}

func (s *Session) report(err error) {
	if s.notify != nil {
		s.notify(err)
	}
}
