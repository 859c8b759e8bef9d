package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

func testClaims(expiresAt time.Time) *models.Claims {
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
	}
	user.ID = 42
	return models.NewClaims(user, expiresAt)
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hashed)

	assert.NoError(t, CompareHashAndPassword(hashed, "s3cret-pass"))
	assert.Error(t, CompareHashAndPassword(hashed, "wrong-pass"))
}

func TestJwtTokenRoundTrip(t *testing.T) {
	secret := []byte(GenerateSecretKey())

	tokenString, err := CreateJwtToken(testClaims(time.Now().Add(time.Hour)), secret)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenString, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "Test", claims.FirstName)
	assert.Equal(t, "User", claims.LastName)
}

func TestJwtTokenRejectsWrongKeyAndExpiry(t *testing.T) {
	secret := []byte(GenerateSecretKey())

	tokenString, err := CreateJwtToken(testClaims(time.Now().Add(time.Hour)), secret)
	require.NoError(t, err)
	_, err = VerifyToken(tokenString, []byte(GenerateSecretKey()))
	assert.Error(t, err)

	expired, err := CreateJwtToken(testClaims(time.Now().Add(-time.Minute)), secret)
	require.NoError(t, err)
	_, err = VerifyToken(expired, secret)
	assert.Error(t, err)
}
