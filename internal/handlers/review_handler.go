package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

func (rh *RestHandler) CreateReview(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}
	listingID, ok := listingIDParam(ctx)
	if !ok {
		return
	}

	var body models.CreateReviewRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondFailed(ctx, []error{errs.ErrInvalidRequestBody})
		return
	}

	review, createErrs := rh.reviewService.CreateReview(listingID, userID, &body)
	if len(createErrs) > 0 {
		respondFailed(ctx, createErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, review)
}

func (rh *RestHandler) GetListingReviews(ctx *gin.Context) {
	listingID, ok := listingIDParam(ctx)
	if !ok {
		return
	}

	reviews, listErrs := rh.reviewService.GetReviewsByListing(listingID)
	if len(listErrs) > 0 {
		respondFailed(ctx, listErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, reviews)
}
