package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/configs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/handlers"
)

type HttpServer struct {
	config        *configs.Config
	router        *gin.Engine
	restHandler   *handlers.RestHandler
	socketHandler *handlers.SocketChatHandler
	logger        *slog.Logger
}

func NewHttpServer(
	config *configs.Config,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketChatHandler,
	logger *slog.Logger,
) *HttpServer {
	return &HttpServer{
		config:        config,
		restHandler:   restHandler,
		socketHandler: socketHandler,
		logger:        logger,
	}
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (hs *HttpServer) Run(ctx context.Context) {
	hs.router = gin.Default()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	addr := fmt.Sprintf("%s:%d",
		hs.config.Viper.GetString("server.host"),
		hs.config.Viper.GetInt("server.port"),
	)
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		hs.logger.Info("http server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hs.logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	hs.waitForShutdown(ctx, server)
}

func (hs *HttpServer) setupRestfulRoutes() {
	hs.router.POST("/register", hs.restHandler.Register)
	hs.router.POST("/login", hs.restHandler.Login)
	hs.router.GET("/listings", hs.restHandler.GetListings)
	hs.router.GET("/listings/:id", hs.restHandler.GetListing)
	hs.router.GET("/listings/:id/reviews", hs.restHandler.GetListingReviews)

	authorized := hs.router.Group("/", hs.restHandler.MustAuthenticateMiddleware())
	authorized.GET("/profile", hs.restHandler.GetProfile)
	authorized.POST("/profile/photo", hs.restHandler.UploadUserProfilePhoto)
	authorized.GET("/users", hs.restHandler.GetAllUsersWithPagination)
	authorized.GET("/users/:id", hs.restHandler.GetSingleUser)

	authorized.POST("/listings", hs.restHandler.CreateListing)
	authorized.GET("/my/listings", hs.restHandler.GetMyListings)
	authorized.POST("/listings/:id/photo", hs.restHandler.UploadListingPhoto)
	authorized.POST("/listings/:id/reviews", hs.restHandler.CreateReview)

	authorized.POST("/conversations", hs.restHandler.OpenConversation)
	authorized.GET("/conversations", hs.restHandler.GetUserConversations)
	authorized.GET("/conversations/:id/messages", hs.restHandler.GetConversationMessages)
	authorized.POST("/conversations/:id/messages", hs.restHandler.SendMessage)
	authorized.POST("/conversations/:id/read", hs.restHandler.MarkConversationRead)
	authorized.POST("/messages/:id/read", hs.restHandler.MarkMessageRead)
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/chat", hs.socketHandler.HandleSocketChatRoute)
}

func (hs *HttpServer) waitForShutdown(ctx context.Context, server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	hs.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		hs.logger.Error("forced shutdown", "error", err)
	}
	hs.logger.Info("server exiting")
}
