package app

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/configs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/handlers"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/obs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/realtime"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/repositories"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/servers/database"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/servers/http"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/services"
)

// Run is the composition root: every client and service is constructed here
// and passed down explicitly, with lifecycle tied to ctx.
func Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(config.Viper.GetString("server.env"))

	db, err := database.Connect(config)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d",
			config.Viper.GetString("redis.host"),
			config.Viper.GetInt("redis.port"),
		),
	})
	defer redisClient.Close()

	hub := realtime.NewHub(redisClient, logger)
	go func() {
		if err := hub.Run(ctx); err != nil {
			logger.Error("realtime hub stopped", "error", err)
			os.Exit(1)
		}
	}()

	authRepo := repositories.NewAuthenticationRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	authService := services.NewAuthenticationService(authRepo, config)
	listingService := services.NewListingService(listingRepo, reviewRepo)
	reviewService := services.NewReviewService(reviewRepo, listingRepo)
	chatService := services.NewChatService(chatRepo, authRepo, listingRepo, hub, logger)

	minioService, err := services.NewMinioService(config, logger)
	if err != nil {
		logger.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	fileManagerService := services.NewFileManagerService(minioService)

	restHandler := handlers.NewRestHandler(
		authService,
		listingService,
		reviewService,
		chatService,
		fileManagerService,
		logger,
	)
	socketHandler := handlers.NewSocketChatHandler(hub, chatService, authService, logger)

	http.NewHttpServer(config, restHandler, socketHandler, logger).Run(ctx)
}
