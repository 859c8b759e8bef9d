package handlers

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/enums"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

func (rh *RestHandler) CreateListing(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	var body models.CreateListingRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondFailed(ctx, []error{errs.ErrInvalidRequestBody})
		return
	}

	listing, createErrs := rh.listingService.CreateListing(userID, &body)
	if len(createErrs) > 0 {
		respondFailed(ctx, createErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, listing)
}

func (rh *RestHandler) GetListings(ctx *gin.Context) {
	page, size := paginationParams(ctx)

	response, listErrs := rh.listingService.GetListings(page, size)
	if len(listErrs) > 0 {
		respondFailed(ctx, listErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, response)
}

func (rh *RestHandler) GetListing(ctx *gin.Context) {
	listingID, ok := listingIDParam(ctx)
	if !ok {
		return
	}

	listing, getErrs := rh.listingService.GetListing(listingID)
	if len(getErrs) > 0 {
		respondFailed(ctx, getErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, listing)
}

func (rh *RestHandler) GetMyListings(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	listings, listErrs := rh.listingService.GetListingsByOwner(userID)
	if len(listErrs) > 0 {
		respondFailed(ctx, listErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, listings)
}

func (rh *RestHandler) UploadListingPhoto(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}
	listingID, ok := listingIDParam(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		respondFailed(ctx, []error{errs.ErrNoFileUploaded})
		return
	}
	src, err := file.Open()
	if err != nil {
		respondFailed(ctx, []error{errs.ErrUnableToOpenUploadedFile})
		return
	}
	defer src.Close()

	fileExt := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("listing_photo_%d%s", listingID, fileExt)

	url, err := rh.fileManagerService.UploadListingPhoto(fileName, src, file.Size, file.Header.Get("Content-Type"), enums.FILE_BUCKET_LISTING_PHOTOS)
	if err != nil {
		respondFailed(ctx, []error{errs.ErrUnableToUploadFile})
		return
	}

	if updateErrs := rh.listingService.UpdateListingPhoto(listingID, userID, url); len(updateErrs) > 0 {
		respondFailed(ctx, updateErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, url)
}

func listingIDParam(ctx *gin.Context) (uint, bool) {
	idInt, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || idInt < 1 {
		respondFailed(ctx, []error{errs.ErrInvalidParams})
		return 0, false
	}
	return uint(idInt), true
}
