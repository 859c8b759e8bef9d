package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{
		db: db,
	}
}

func (lr *ListingRepository) CreateListing(listing *models.Listing) error {
	return lr.db.Create(listing).Error
}

func (lr *ListingRepository) GetListingByID(listingID uint) (*models.Listing, error) {
	var listing models.Listing
	err := lr.db.Where("id = ?", listingID).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// GetListingsByIDs resolves listing metadata in one query, keyed by id.
func (lr *ListingRepository) GetListingsByIDs(listingIDs []uint) (map[uint]models.Listing, error) {
	listings := make(map[uint]models.Listing, len(listingIDs))
	if len(listingIDs) == 0 {
		return listings, nil
	}
	var rows []models.Listing
	if err := lr.db.Where("id IN ?", listingIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, listing := range rows {
		listings[listing.ID] = listing
	}
	return listings, nil
}

func (lr *ListingRepository) GetListingsWithPagination(page, size int) (*models.ListingListResponse, error) {
	var listings []models.Listing
	var total int64

	if err := lr.db.Model(&models.Listing{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := lr.db.
		Scopes(utils.Paginate(page, size)).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	return &models.ListingListResponse{
		Listings: listings,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

func (lr *ListingRepository) GetListingsByOwner(ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := lr.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (lr *ListingRepository) UpdateListingPhoto(listingID uint, url string) error {
	result := lr.db.Model(&models.Listing{}).Where("id = ?", listingID).Update("photo_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrListingNotFound
	}
	return nil
}
