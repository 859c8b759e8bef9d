package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

func TestValidateUser(t *testing.T) {
	assert.Contains(t, ValidateUser(nil), error(errs.ErrUserIsNil))

	valid := &models.User{
		Email:     "test@example.com",
		Password:  "passw0rd!",
		FirstName: "Test",
		LastName:  "User",
	}
	assert.Empty(t, ValidateUser(valid))

	invalid := &models.User{
		Email:     "not-an-email",
		Password:  "short",
		FirstName: "T",
		LastName:  "",
	}
	errors := ValidateUser(invalid)
	assert.Contains(t, errors, error(errs.ErrInvalidEmail))
	assert.Contains(t, errors, error(errs.ErrInvalidPassword))
	assert.Contains(t, errors, error(errs.ErrFirstName))
	assert.Contains(t, errors, error(errs.ErrLastName))
}
