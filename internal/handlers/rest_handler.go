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

func (rh *RestHandler) Register(ctx *gin.Context) {
	var user models.User
	if err := ctx.BindJSON(&user); err != nil {
		respondFailed(ctx, []error{errs.ErrInvalidRequestBody})
		return
	}

	if _, registerErrs := rh.authService.Register(&user); len(registerErrs) > 0 {
		respondFailed(ctx, registerErrs)
		return
	}

	respondOK(ctx, msgs.MsgUserCreatedSuccessfully, nil)
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.BindJSON(&loginData); err != nil {
		rh.logger.Warn("login body binding failed", "error", err)
		respondFailed(ctx, []error{errs.ErrInvalidRequestBody})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		respondFailed(ctx, loginErrs)
		return
	}

	respondOK(ctx, msgs.MsgOperationSuccessful, loginResponse)
}

func (rh *RestHandler) GetProfile(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	profile, profileErrs := rh.authService.GetProfile(userID)
	if len(profileErrs) > 0 {
		respondFailed(ctx, profileErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, profile)
}

func (rh *RestHandler) GetSingleUser(ctx *gin.Context) {
	idInt, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || idInt < 1 {
		respondFailed(ctx, []error{errs.ErrInvalidParams})
		return
	}

	user, userErrs := rh.authService.GetSingleUser(uint(idInt))
	if len(userErrs) > 0 {
		respondFailed(ctx, userErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, user)
}

func (rh *RestHandler) GetAllUsersWithPagination(ctx *gin.Context) {
	page, size := paginationParams(ctx)

	response, userErrs := rh.authService.GetAllUsersWithPagination(page, size)
	if len(userErrs) > 0 {
		respondFailed(ctx, userErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, response)
}

func (rh *RestHandler) UploadUserProfilePhoto(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	file, err := ctx.FormFile("profile_photo")
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
	fileName := fmt.Sprintf("user_profile_photo_%d%s", userID, fileExt)

	url, err := rh.fileManagerService.UploadUserProfilePhoto(fileName, src, file.Size, file.Header.Get("Content-Type"), enums.FILE_BUCKET_USER_PROFILE)
	if err != nil {
		respondFailed(ctx, []error{errs.ErrUnableToUploadFile})
		return
	}

	if updateErrs := rh.authService.UpdateUserProfilePhoto(userID, url); len(updateErrs) > 0 {
		respondFailed(ctx, []error{errs.ErrUnableToUpdateProfilePhoto})
		return
	}

	respondOK(ctx, msgs.MsgOperationSuccessful, url)
}

func paginationParams(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.Query("size"))
	if err != nil || size < 1 {
		size = 10
	}
	return page, size
}
