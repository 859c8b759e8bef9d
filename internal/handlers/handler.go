package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/services"
)

// RestHandler serves every REST route: auth, listings, reviews, chat.
type RestHandler struct {
	authService        *services.AuthenticationService
	listingService     *services.ListingService
	reviewService      *services.ReviewService
	chatService        *services.ChatService
	fileManagerService *services.FileManagerService
	logger             *slog.Logger
}

func NewRestHandler(
	authService *services.AuthenticationService,
	listingService *services.ListingService,
	reviewService *services.ReviewService,
	chatService *services.ChatService,
	fileManagerService *services.FileManagerService,
	logger *slog.Logger,
) *RestHandler {
	return &RestHandler{
		authService:        authService,
		listingService:     listingService,
		reviewService:      reviewService,
		chatService:        chatService,
		fileManagerService: fileManagerService,
		logger:             logger,
	}
}

func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFailed(ctx *gin.Context, errors []error) {
	ctx.AbortWithStatusJSON(statusForErrors(errors), models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  models.ErrorStrings(errors),
	})
}

func respondUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: message,
		Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
	})
}

// statusForErrors maps the error taxonomy onto HTTP codes: not-found 404,
// conflict 409, authorization 401/403, everything else a validation 400.
func statusForErrors(errors []error) int {
	for _, err := range errors {
		switch err {
		case errs.ErrUserNotFound, errs.ErrListingNotFound,
			errs.ErrConversationNotFound, errs.ErrMessageNotFound:
			return http.StatusNotFound
		case errs.ErrConversationConflict:
			return http.StatusConflict
		case errs.ErrUnauthorized:
			return http.StatusUnauthorized
		case errs.ErrNotConversationParticipant, errs.ErrNotListingOwner:
			return http.StatusForbidden
		}
	}
	return http.StatusBadRequest
}
