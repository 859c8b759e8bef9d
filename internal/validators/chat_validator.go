package validators

import (
	"strings"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

// ValidateMessageBody trims the body and rejects empty messages. The trimmed
// body is what gets persisted.
func ValidateMessageBody(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", errs.ErrEmptyMessageBody
	}
	return trimmed, nil
}

// ValidateMessageParties checks that sender and recipient are exactly the two
// participants of the conversation and are not the same user.
func ValidateMessageParties(conversation *models.Conversation, senderID, recipientID uint) []error {
	var errors []error
	if senderID == recipientID {
		errors = append(errors, errs.ErrSelfConversation)
		return errors
	}
	if !conversation.HasParticipant(senderID) || !conversation.HasParticipant(recipientID) {
		errors = append(errors, errs.ErrNotConversationParticipant)
	}
	return errors
}

// ValidateConversationTriple checks the identities used to open a thread.
func ValidateConversationTriple(listing *models.Listing, renterID, ownerID uint) []error {
	var errors []error
	if listing == nil {
		errors = append(errors, errs.ErrListingNotFound)
		return errors
	}
	if renterID == 0 || ownerID == 0 {
		errors = append(errors, errs.ErrInvalidParams)
		return errors
	}
	if renterID == ownerID {
		errors = append(errors, errs.ErrSelfConversation)
	}
	if listing.OwnerID != ownerID {
		errors = append(errors, errs.ErrOwnerMismatch)
	}
	return errors
}
