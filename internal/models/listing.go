package models

import (
	"gorm.io/gorm"
)

// Listing is a rentable item posted by its owner.
type Listing struct {
	gorm.Model
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	PricePerDay float64 `gorm:"not null" json:"price_per_day"`
	Location    string  `json:"location"`
	PhotoURL    *string `json:"photo_url"`
}

type ListingResponse struct {
	Listing
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}
