package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

// OpenConversation resolves or creates the thread between the current user
// and the owner of the given listing.
func (rh *RestHandler) OpenConversation(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	var body models.OpenConversationRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondFailed(ctx, []error{errs.ErrInvalidRequestBody})
		return
	}

	listing, err := rh.listingService.GetListingByID(body.ListingID)
	if err != nil {
		respondFailed(ctx, []error{err})
		return
	}

	conversation, convErrs := rh.chatService.GetOrCreateConversation(listing.ID, userID, listing.OwnerID)
	if len(convErrs) > 0 {
		respondFailed(ctx, convErrs)
		return
	}
	respondOK(ctx, msgs.MsgConversationReady, conversation)
}

// GetUserConversations returns the current user's conversation list with
// counterpart names, listing titles, and unread counts. The optional filter
// query narrows by counterpart name or listing title.
func (rh *RestHandler) GetUserConversations(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	summaries, listErrs := rh.chatService.ListConversationsForUser(userID, ctx.Query("filter"))
	if len(listErrs) > 0 {
		respondFailed(ctx, listErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, models.ConversationListResponse{Conversations: summaries})
}

func (rh *RestHandler) GetConversationMessages(ctx *gin.Context) {
	_, conversation, ok := rh.requireParticipant(ctx)
	if !ok {
		return
	}

	messages, historyErrs := rh.chatService.FetchHistory(conversation.ID)
	if len(historyErrs) > 0 {
		respondFailed(ctx, historyErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, models.MessageListResponse{Messages: messages})
}

func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	userID, conversation, ok := rh.requireParticipant(ctx)
	if !ok {
		return
	}

	var body models.MessageRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondFailed(ctx, []error{errs.ErrInvalidRequest})
		return
	}

	message, sendErrs := rh.chatService.SendMessage(
		ctx.Request.Context(),
		conversation.ID,
		userID,
		conversation.Counterpart(userID),
		body.Body,
	)
	if len(sendErrs) > 0 {
		respondFailed(ctx, sendErrs)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, message)
}

// MarkMessageRead flips one message's read flag. The update is scoped to the
// caller as recipient; senders and third parties get a 403.
func (rh *RestHandler) MarkMessageRead(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return
	}

	idInt, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || idInt < 1 {
		respondFailed(ctx, []error{errs.ErrInvalidParams})
		return
	}

	if markErrs := rh.chatService.MarkMessageRead(uint(idInt), userID); len(markErrs) > 0 {
		respondFailed(ctx, markErrs)
		return
	}
	respondOK(ctx, msgs.MsgMessagesMarkedRead, nil)
}

// MarkConversationRead clears all unread messages addressed to the current
// user, the bulk call a session issues on open.
func (rh *RestHandler) MarkConversationRead(ctx *gin.Context) {
	userID, conversation, ok := rh.requireParticipant(ctx)
	if !ok {
		return
	}

	if markErrs := rh.chatService.MarkAllReadForUser(conversation.ID, userID); len(markErrs) > 0 {
		respondFailed(ctx, markErrs)
		return
	}
	respondOK(ctx, msgs.MsgMessagesMarkedRead, nil)
}

// requireParticipant authenticates the caller, parses the conversation id
// param, and checks membership. Third parties never read or write a thread.
func (rh *RestHandler) requireParticipant(ctx *gin.Context) (uint, *models.Conversation, bool) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
		return 0, nil, false
	}

	idInt, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || idInt < 1 {
		respondFailed(ctx, []error{errs.ErrInvalidConversationId})
		return 0, nil, false
	}

	conversation, err := rh.chatService.GetConversation(uint(idInt))
	if err != nil {
		respondFailed(ctx, []error{err})
		return 0, nil, false
	}
	if !conversation.HasParticipant(userID) {
		respondFailed(ctx, []error{errs.ErrNotConversationParticipant})
		return 0, nil, false
	}
	return userID, conversation, true
}
