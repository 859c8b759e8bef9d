package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResponseNeverSerializesCredentials(t *testing.T) {
	user := &User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        "test@example.com",
		Password:     "plaintext-secret",
		PasswordHash: "bcrypt-digest",
	}
	user.ID = 3

	raw, err := json.Marshal(LoginResponse{
		User:  *user.ToProfileResponse(),
		Token: "token-value",
	})
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "plaintext-secret")
	assert.NotContains(t, body, "bcrypt-digest")
	assert.Contains(t, body, `"email":"test@example.com"`)
	assert.Contains(t, body, `"token":"token-value"`)
}

func TestErrorStrings(t *testing.T) {
	assert.Nil(t, ErrorStrings(nil))
	assert.Equal(t,
		[]string{"first", "second"},
		ErrorStrings([]error{errors.New("first"), errors.New("second")}))
}
