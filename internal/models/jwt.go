package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued at login: the account id plus the
// profile fields the client renders without a second lookup.
type Claims struct {
	ID        uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

func NewClaims(user *User, expiresAt time.Time) *Claims {
	return &Claims{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}
