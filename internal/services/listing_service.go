package services

import (
	"strings"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/repositories"
)

type ListingService struct {
	listingRepo *repositories.ListingRepository
	reviewRepo  *repositories.ReviewRepository
}

func NewListingService(
	listingRepo *repositories.ListingRepository,
	reviewRepo *repositories.ReviewRepository,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
	}
}

func (ls *ListingService) CreateListing(ownerID uint, body *models.CreateListingRequestBody) (*models.Listing, []error) {
	var errors []error
	if strings.TrimSpace(body.Title) == "" {
		errors = append(errors, errs.ErrListingTitle)
	}
	if body.PricePerDay <= 0 {
		errors = append(errors, errs.ErrListingPrice)
	}
	if len(errors) > 0 {
		return nil, errors
	}

	listing := &models.Listing{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		PricePerDay: body.PricePerDay,
		Location:    body.Location,
	}
	if err := ls.listingRepo.CreateListing(listing); err != nil {
		return nil, []error{err}
	}
	return listing, nil
}

// GetListing returns the listing with its aggregated review rating.
func (ls *ListingService) GetListing(listingID uint) (*models.ListingResponse, []error) {
	listing, err := ls.listingRepo.GetListingByID(listingID)
	if err != nil {
		return nil, []error{err}
	}
	average, count, err := ls.reviewRepo.GetListingRating(listingID)
	if err != nil {
		return nil, []error{err}
	}
	return &models.ListingResponse{
		Listing:       *listing,
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}

func (ls *ListingService) GetListingByID(listingID uint) (*models.Listing, error) {
	return ls.listingRepo.GetListingByID(listingID)
}

func (ls *ListingService) GetListings(page, size int) (*models.ListingListResponse, []error) {
	response, err := ls.listingRepo.GetListingsWithPagination(page, size)
	if err != nil {
		return nil, []error{err}
	}
	return response, nil
}

func (ls *ListingService) GetListingsByOwner(ownerID uint) ([]models.Listing, []error) {
	listings, err := ls.listingRepo.GetListingsByOwner(ownerID)
	if err != nil {
		return nil, []error{err}
	}
	return listings, nil
}

// UpdateListingPhoto stores the uploaded photo URL. Only the owner may do it.
func (ls *ListingService) UpdateListingPhoto(listingID, userID uint, url string) []error {
	listing, err := ls.listingRepo.GetListingByID(listingID)
	if err != nil {
		return []error{err}
	}
	if listing.OwnerID != userID {
		return []error{errs.ErrNotListingOwner}
	}
	if err := ls.listingRepo.UpdateListingPhoto(listingID, url); err != nil {
		return []error{err}
	}
	return nil
}
