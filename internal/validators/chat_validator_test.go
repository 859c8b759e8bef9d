package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

func TestValidateMessageBody(t *testing.T) {
	trimmed, err := ValidateMessageBody("  hello there \n")
	require.NoError(t, err)
	assert.Equal(t, "hello there", trimmed)

	_, err = ValidateMessageBody("")
	assert.ErrorIs(t, err, errs.ErrEmptyMessageBody)

	_, err = ValidateMessageBody("   \t\n")
	assert.ErrorIs(t, err, errs.ErrEmptyMessageBody)
}

func TestValidateMessageParties(t *testing.T) {
	conversation := &models.Conversation{RenterID: 1, OwnerID: 2}

	assert.Empty(t, ValidateMessageParties(conversation, 1, 2))
	assert.Empty(t, ValidateMessageParties(conversation, 2, 1))

	errors := ValidateMessageParties(conversation, 1, 1)
	assert.Contains(t, errors, error(errs.ErrSelfConversation))

	errors = ValidateMessageParties(conversation, 1, 9)
	assert.Contains(t, errors, error(errs.ErrNotConversationParticipant))

	errors = ValidateMessageParties(conversation, 9, 2)
	assert.Contains(t, errors, error(errs.ErrNotConversationParticipant))
}

func TestValidateConversationTriple(t *testing.T) {
	listing := &models.Listing{Model: gorm.Model{ID: 10}, OwnerID: 2, Title: "Test"}

	assert.Empty(t, ValidateConversationTriple(listing, 1, 2))

	errors := ValidateConversationTriple(nil, 1, 2)
	assert.Contains(t, errors, error(errs.ErrListingNotFound))

	errors = ValidateConversationTriple(listing, 0, 2)
	assert.Contains(t, errors, error(errs.ErrInvalidParams))

	errors = ValidateConversationTriple(listing, 2, 2)
	assert.Contains(t, errors, error(errs.ErrSelfConversation))

	errors = ValidateConversationTriple(listing, 1, 3)
	assert.Contains(t, errors, error(errs.ErrOwnerMismatch))
}
