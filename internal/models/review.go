package models

import (
	"gorm.io/gorm"
)

// Review is a rating left on a listing by a user.
type Review struct {
	gorm.Model
	ListingID uint   `gorm:"not null;index" json:"listing_id"`
	AuthorID  uint   `gorm:"not null" json:"author_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"not null" json:"comment"`
}
