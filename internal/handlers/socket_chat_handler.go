package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/enums"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/errs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/models"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/realtime"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/services"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

// SocketChatHandler upgrades authenticated participants onto the realtime
// channel for one conversation. Events published for that conversation are
// pushed to the connection; frames read from the client are chat commands.
type SocketChatHandler struct {
	upgrader    websocket.Upgrader
	hub         *realtime.Hub
	chatService *services.ChatService
	authService *services.AuthenticationService
	logger      *slog.Logger
}

func NewSocketChatHandler(
	hub *realtime.Hub,
	chatService *services.ChatService,
	authService *services.AuthenticationService,
	logger *slog.Logger,
) *SocketChatHandler {
	return &SocketChatHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:         hub,
		chatService: chatService,
		authService: authService,
		logger:      logger,
	}
}

func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		respondUnauthorized(ctx, msgs.MsgOperationFailed)
		return
	}
	userInfo, err := utils.VerifyToken(jwtToken, sch.authService.JwtKey())
	if err != nil || userInfo.ID == 0 {
		respondUnauthorized(ctx, msgs.MsgOperationFailed)
		return
	}

	conversationIdInt, err := strconv.Atoi(ctx.Query("conversationId"))
	if err != nil || conversationIdInt < 1 {
		respondFailed(ctx, []error{errs.ErrInvalidConversationId})
		return
	}
	conversationID := uint(conversationIdInt)

	conversation, err := sch.chatService.GetConversation(conversationID)
	if err != nil {
		respondFailed(ctx, []error{err})
		return
	}
	if !conversation.HasParticipant(userInfo.ID) {
		respondFailed(ctx, []error{errs.ErrNotConversationParticipant})
		return
	}

	sch.handleConnection(ctx, userInfo, conversation)
}

func (sch *SocketChatHandler) handleConnection(ctx *gin.Context, userInfo *models.Claims, conversation *models.Conversation) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sch.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	// One writer mutex per connection; the hub dispatch goroutine and the
	// close path both write.
	var writeMu sync.Mutex
	sub := sch.hub.Subscribe(conversation.ID, func(event models.MessageAppendedEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if writeErr := ws.WriteJSON(event); writeErr != nil {
			sch.logger.Warn("dropping chat subscriber",
				"conversation_id", event.ConversationID, "user_id", userInfo.ID, "error", writeErr)
		}
	})
	defer sub.Cancel()

	sch.logger.Info("chat subscriber connected",
		"conversation_id", conversation.ID, "user_id", userInfo.ID,
		"subscribers", sch.hub.SubscriberCount(conversation.ID))

	sch.readLoop(ctx, ws, userInfo, conversation)

	sch.logger.Info("chat subscriber disconnected",
		"conversation_id", conversation.ID, "user_id", userInfo.ID)
}

func (sch *SocketChatHandler) readLoop(ctx *gin.Context, ws *websocket.Conn, userInfo *models.Claims, conversation *models.Conversation) {
	for {
		var event models.SocketEvent
		if err := ws.ReadJSON(&event); err != nil {
			return
		}
		event.ConversationID = conversation.ID

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			if handleErrs := sch.handleSendMessageEvent(ctx, event.Payload, userInfo, conversation); len(handleErrs) > 0 {
				sch.logger.Warn("send message event failed",
					"conversation_id", conversation.ID, "user_id", userInfo.ID, "errors", models.ErrorStrings(handleErrs))
			}
		case enums.SOCKET_EVENT_SEEN_MESSAGE:
			if handleErrs := sch.handleSeenMessageEvent(event.Payload, userInfo, conversation); len(handleErrs) > 0 {
				sch.logger.Warn("seen message event failed",
					"conversation_id", conversation.ID, "user_id", userInfo.ID, "errors", models.ErrorStrings(handleErrs))
			}
		default:
			sch.logger.Warn("unknown socket event", "event", event.Event)
		}
	}
}

func (sch *SocketChatHandler) handleSendMessageEvent(ctx *gin.Context, payload json.RawMessage, userInfo *models.Claims, conversation *models.Conversation) []error {
	var sendPayload models.SendMessagePayload
	if err := json.Unmarshal(payload, &sendPayload); err != nil {
		return []error{errs.ErrInvalidRequest}
	}

	_, sendErrs := sch.chatService.SendMessage(
		ctx.Request.Context(),
		conversation.ID,
		userInfo.ID,
		conversation.Counterpart(userInfo.ID),
		sendPayload.Body,
	)
	return sendErrs
}

// handleSeenMessageEvent marks a batch of messages read. The batch is scoped
// to this connection's conversation and to messages addressed to the
// connected user; ids outside that scope are not marked.
func (sch *SocketChatHandler) handleSeenMessageEvent(payload json.RawMessage, userInfo *models.Claims, conversation *models.Conversation) []error {
	var seenPayload models.SeenMessagePayload
	if err := json.Unmarshal(payload, &seenPayload); err != nil {
		return []error{errs.ErrInvalidRequest}
	}
	return sch.chatService.MarkMessagesSeen(conversation.ID, userInfo.ID, seenPayload.MessageIds)
}
