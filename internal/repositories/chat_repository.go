package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// FindConversation looks up the thread by its exact triple. Roles are fixed,
// so there is no reversed (owner, renter) lookup.
func (chr *ChatRepository) FindConversation(listingID, renterID, ownerID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := chr.db.
		Where("listing_id = ? AND renter_id = ? AND owner_id = ?", listingID, renterID, ownerID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// CreateConversation inserts a new thread. The unique index on the triple
// turns a concurrent duplicate insert into ErrConversationConflict, which the
// service recovers from by re-querying.
func (chr *ChatRepository) CreateConversation(conversation *models.Conversation) error {
	if err := chr.db.Create(conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConversationConflict
		}
		return err
	}
	return nil
}

func (chr *ChatRepository) GetConversationByID(conversationID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := chr.db.Where("id = ?", conversationID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// SaveMessage appends the message and bumps the parent conversation's
// last-activity timestamp in one transaction.
func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, error) {
	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		return nil, transactionErr
	}
	return message, nil
}

// GetMessagesByConversationID returns the full history ordered by creation
// time, id as the stable tie-break.
func (chr *ChatRepository) GetMessagesByConversationID(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageRead flips the read flag once. Only the recipient can flip it;
// marking an already-read message is a no-op, not an error.
func (chr *ChatRepository) MarkMessageRead(messageID, recipientID uint) error {
	result := chr.db.Model(&models.Message{}).
		Where("id = ? AND recipient_id = ? AND read = ?", messageID, recipientID, false).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var message models.Message
		if err := chr.db.Select("id", "recipient_id").Where("id = ?", messageID).First(&message).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrMessageNotFound
			}
			return err
		}
		if message.RecipientID != recipientID {
			return errs.ErrNotConversationParticipant
		}
	}
	return nil
}

// MarkMessagesSeen marks a batch of messages read, constrained to one
// conversation and to messages addressed to recipientID. Ids outside that
// scope are silently skipped; a batch where nothing was eligible is an error.
func (chr *ChatRepository) MarkMessagesSeen(conversationID, recipientID uint, messageIDs []uint) error {
	if len(messageIDs) == 0 {
		return nil
	}
	result := chr.db.Model(&models.Message{}).
		Where("id IN ? AND conversation_id = ? AND recipient_id = ? AND read = ?",
			messageIDs, conversationID, recipientID, false).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoneOfMessagesSeen
	}
	return nil
}

// MarkAllRead marks every unread message addressed to recipientID in the
// conversation. Used when a session opens to clear the unread badge.
func (chr *ChatRepository) MarkAllRead(conversationID, recipientID uint) error {
	return chr.db.Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND read = ?", conversationID, recipientID, false).
		Update("read", true).Error
}

func (chr *ChatRepository) GetUserConversations(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := chr.db.
		Where("renter_id = ? OR owner_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

type unreadRow struct {
	ConversationID uint
	Count          int64
}

// CountUnread returns per-conversation unread counts for userID in a single
// grouped query instead of one count per conversation.
func (chr *ChatRepository) CountUnread(conversationIDs []uint, userID uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return counts, nil
	}
	var rows []unreadRow
	err := chr.db.Model(&models.Message{}).
		Select("conversation_id, COUNT(*) AS count").
		Where("conversation_id IN ? AND recipient_id = ? AND read = ?", conversationIDs, userID, false).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ConversationID] = row.Count
	}
	return counts, nil
}
