package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/social-network/internal/api/http"
	"github.com/spec-kit/social-network/internal/api/http/handlers"
	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/config"
	"github.com/spec-kit/social-network/internal/events"
	"github.com/spec-kit/social-network/internal/observability"
	"github.com/spec-kit/social-network/internal/persistence"
	"github.com/spec-kit/social-network/internal/repository"
	"github.com/spec-kit/social-network/internal/service"
	"github.com/spec-kit/social-network/internal/storage"
	"github.com/spec-kit/social-network/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	if err := persistence.EnsureIndexes(ctx, mongo.Database, logger); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	images, err := storage.NewImageStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to init uploads dir", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(mongo.Database)
	postRepo := repository.NewPostRepository(mongo.Database)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, dispatcher, logger)
	usersService := service.NewUsersService(*cfg, userRepo, postRepo)
	postsService := service.NewPostsService(postRepo, userRepo, dispatcher)
	statsService := service.NewStatsService(postRepo)
	notificationService := service.NewNotificationService(dispatcher, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Auth:           handlers.NewAuthHandler(authService, images),
		Users:          handlers.NewUsersHandler(usersService),
		AdminUsers:     handlers.NewAdminUsersHandler(usersService),
		Posts:          handlers.NewPostsHandler(postsService, usersService, images),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
		RateLimiter:    httptransport.RateLimiter(redis.Client, cfg.RateLimit.Max, cfg.RateLimit.Window),
		UploadsDir:     images.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
