package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/validators"
)

// ChatStore is the durable side of the messaging core.
type ChatStore interface {
	FindConversation(listingID, renterID, ownerID uint) (*models.Conversation, error)
	CreateConversation(conversation *models.Conversation) error
	GetConversationByID(conversationID uint) (*models.Conversation, error)
	SaveMessage(message *models.Message) (*models.Message, error)
	GetMessagesByConversationID(conversationID uint) ([]models.Message, error)
	MarkMessageRead(messageID, recipientID uint) error
	MarkMessagesSeen(conversationID, recipientID uint, messageIDs []uint) error
	MarkAllRead(conversationID, recipientID uint) error
	GetUserConversations(userID uint) ([]models.Conversation, error)
	CountUnread(conversationIDs []uint, userID uint) (map[uint]int64, error)
}

// ProfileDirectory resolves display names for the aggregator.
type ProfileDirectory interface {
	GetUsersByIDs(userIDs []uint) (map[uint]models.User, error)
}

// ListingDirectory resolves listings for directory validation and the
// aggregator's title join.
type ListingDirectory interface {
	GetListingByID(listingID uint) (*models.Listing, error)
	GetListingsByIDs(listingIDs []uint) (map[uint]models.Listing, error)
}

// EventPublisher pushes appended messages onto the realtime channel.
type EventPublisher interface {
	PublishMessageAppended(ctx context.Context, message *models.Message) error
}

type ChatService struct {
	store    ChatStore
	profiles ProfileDirectory
	listings ListingDirectory
	events   EventPublisher
	logger   *slog.Logger
}

func NewChatService(
	store ChatStore,
	profiles ProfileDirectory,
	listings ListingDirectory,
	events EventPublisher,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		store:    store,
		profiles: profiles,
		listings: listings,
		events:   events,
		logger:   logger,
	}
}

// GetOrCreateConversation resolves the thread for the exact
// (listing, renter, owner) triple, creating it on first contact. A
// concurrent duplicate insert surfaces as a conflict from the store's unique
// index; the recovery is a single re-query.
func (cs *ChatService) GetOrCreateConversation(listingID, renterID, ownerID uint) (*models.Conversation, []error) {
	var errorList []error

	listing, err := cs.listings.GetListingByID(listingID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	if validationErrs := validators.ValidateConversationTriple(listing, renterID, ownerID); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	conversation, err := cs.store.FindConversation(listingID, renterID, ownerID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, errs.ErrConversationNotFound) {
		errorList = append(errorList, err)
		return nil, errorList
	}

	conversation = &models.Conversation{
		ListingID: listingID,
		RenterID:  renterID,
		OwnerID:   ownerID,
	}
	createErr := cs.store.CreateConversation(conversation)
	if createErr == nil {
		return conversation, nil
	}
	if !errors.Is(createErr, errs.ErrConversationConflict) {
		errorList = append(errorList, createErr)
		return nil, errorList
	}

	// Lost the first-contact race, the winner's row must exist now.
	conversation, err = cs.store.FindConversation(listingID, renterID, ownerID)
	if err != nil {
		errorList = append(errorList, errs.ErrConversationConflict)
		return nil, errorList
	}
	return conversation, nil
}

// SendMessage validates, persists, and publishes the message. The publish is
// best-effort: a disconnected subscriber closes the gap with FetchHistory, so
// a channel failure never rolls back the append.
func (cs *ChatService) SendMessage(ctx context.Context, conversationID, senderID, recipientID uint, body string) (*models.Message, []error) {
	var errorList []error

	trimmed, err := validators.ValidateMessageBody(body)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}

	conversation, err := cs.store.GetConversationByID(conversationID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	if partyErrs := validators.ValidateMessageParties(conversation, senderID, recipientID); len(partyErrs) > 0 {
		return nil, partyErrs
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Body:           trimmed,
	}
	saved, err := cs.store.SaveMessage(message)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}

	if publishErr := cs.events.PublishMessageAppended(ctx, saved); publishErr != nil {
		cs.logger.Warn("message persisted but not published",
			"conversation_id", conversationID, "message_id", saved.ID, "error", publishErr)
	}
	return saved, nil
}

// FetchHistory returns the full ordered history. Restartable: call again to
// refresh; the order is stable across calls.
func (cs *ChatService) FetchHistory(conversationID uint) ([]models.Message, []error) {
	var errorList []error
	if _, err := cs.store.GetConversationByID(conversationID); err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	messages, err := cs.store.GetMessagesByConversationID(conversationID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	return messages, nil
}

func (cs *ChatService) GetConversation(conversationID uint) (*models.Conversation, error) {
	return cs.store.GetConversationByID(conversationID)
}

// MarkMessageRead is idempotent; re-marking a read message is a no-op. Only
// the message's recipient can mark it, so userID is part of the store
// predicate rather than a post-hoc check.
func (cs *ChatService) MarkMessageRead(messageID, userID uint) []error {
	if err := cs.store.MarkMessageRead(messageID, userID); err != nil {
		return []error{err}
	}
	return nil
}

// MarkMessagesSeen marks a batch read for userID within one conversation,
// the form the socket seen event uses. Ids from other conversations or
// addressed to someone else never match the store predicate.
func (cs *ChatService) MarkMessagesSeen(conversationID, userID uint, messageIDs []uint) []error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := cs.store.MarkMessagesSeen(conversationID, userID, messageIDs); err != nil {
		return []error{err}
	}
	return nil
}

// MarkAllReadForUser clears the unread badge when a session opens.
func (cs *ChatService) MarkAllReadForUser(conversationID, userID uint) []error {
	if _, err := cs.store.GetConversationByID(conversationID); err != nil {
		return []error{err}
	}
	if err := cs.store.MarkAllRead(conversationID, userID); err != nil {
		return []error{err}
	}
	return nil
}

// ListConversationsForUser builds the conversation list: counterpart name,
// listing title, and unread count per thread, newest activity first. Profile,
// listing, and unread lookups are each one batched query. The filter is a
// case-insensitive substring match applied after the fetch.
func (cs *ChatService) ListConversationsForUser(userID uint, filter string) ([]models.ConversationSummary, []error) {
	var errorList []error

	conversations, err := cs.store.GetUserConversations(userID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	if len(conversations) == 0 {
		return []models.ConversationSummary{}, nil
	}

	conversationIDs := make([]uint, 0, len(conversations))
	counterpartIDs := make([]uint, 0, len(conversations))
	listingIDs := make([]uint, 0, len(conversations))
	for i := range conversations {
		conversationIDs = append(conversationIDs, conversations[i].ID)
		counterpartIDs = append(counterpartIDs, conversations[i].Counterpart(userID))
		listingIDs = append(listingIDs, conversations[i].ListingID)
	}

	profiles, err := cs.profiles.GetUsersByIDs(counterpartIDs)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	listings, err := cs.listings.GetListingsByIDs(listingIDs)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	unread, err := cs.store.CountUnread(conversationIDs, userID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conversation := conversations[i]
		counterpartID := conversation.Counterpart(userID)

		counterpartName := models.DefaultDisplayName
		if profile, ok := profiles[counterpartID]; ok {
			counterpartName = profile.DisplayName()
		}
		listingTitle := ""
		if listing, ok := listings[conversation.ListingID]; ok {
			listingTitle = listing.Title
		}

		summary := models.ConversationSummary{
			Conversation:    conversation,
			CounterpartID:   counterpartID,
			CounterpartName: counterpartName,
			ListingTitle:    listingTitle,
			UnreadCount:     unread[conversation.ID],
		}
		if !matchesFilter(summary, filter) {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func matchesFilter(summary models.ConversationSummary, filter string) bool {
	filter = strings.TrimSpace(strings.ToLower(filter))
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(summary.CounterpartName), filter) ||
		strings.Contains(strings.ToLower(summary.ListingTitle), filter)
}
