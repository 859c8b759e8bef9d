package services

import (
	"strings"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/repositories"
)

type ReviewService struct {
	reviewRepo  *repositories.ReviewRepository
	listingRepo *repositories.ListingRepository
}

func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	listingRepo *repositories.ListingRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
	}
}

func (rs *ReviewService) CreateReview(listingID, authorID uint, body *models.CreateReviewRequestBody) (*models.Review, []error) {
	var errors []error
	if body.Rating < 1 || body.Rating > 5 {
		errors = append(errors, errs.ErrInvalidRating)
	}
	comment := strings.TrimSpace(body.Comment)
	if comment == "" {
		errors = append(errors, errs.ErrEmptyReviewComment)
	}
	if len(errors) > 0 {
		return nil, errors
	}

	if _, err := rs.listingRepo.GetListingByID(listingID); err != nil {
		return nil, []error{err}
	}

	review := &models.Review{
		ListingID: listingID,
		AuthorID:  authorID,
		Rating:    body.Rating,
		Comment:   comment,
	}
	if err := rs.reviewRepo.CreateReview(review); err != nil {
		return nil, []error{err}
	}
	return review, nil
}

func (rs *ReviewService) GetReviewsByListing(listingID uint) ([]models.Review, []error) {
	if _, err := rs.listingRepo.GetListingByID(listingID); err != nil {
		return nil, []error{err}
	}
	reviews, err := rs.reviewRepo.GetReviewsByListing(listingID)
	if err != nil {
		return nil, []error{err}
	}
	return reviews, nil
}
