package repositories

import (
	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

func (rr *ReviewRepository) CreateReview(review *models.Review) error {
	return rr.db.Create(review).Error
}

func (rr *ReviewRepository) GetReviewsByListing(listingID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := rr.db.
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

type ratingRow struct {
	Average float64
	Count   int64
}

func (rr *ReviewRepository) GetListingRating(listingID uint) (float64, int64, error) {
	var row ratingRow
	err := rr.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("listing_id = ?", listingID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Count, nil
}
