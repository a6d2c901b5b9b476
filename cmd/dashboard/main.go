package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-dashboard/internal/api/http"
	"github.com/spec-kit/ticket-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	"github.com/spec-kit/ticket-dashboard/internal/persistence"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/session"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/internal/transport"
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

	backend, err := transport.NewClient(cfg.Backend, logger)
	if err != nil {
		logger.Fatal("backend configuration invalid", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	ticketRepo := repository.NewTicketRepository(backend, cfg.Backend, logger)
	commentRepo := repository.NewCommentRepository(backend, cfg.Backend, logger)
	userRepo := repository.NewCachedUserRepository(
		repository.NewUserRepository(backend, cfg.Backend),
		redis.Client,
		cfg.Redis.UserCacheTTL(),
		logger,
	)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	sess := session.New()
	directory := service.NewDirectory(userRepo, sess, logger)

	assignment := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	ticketStore := store.New(store.Dependencies{
		TicketRepo: ticketRepo,
		Assignment: assignment,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := directory.Load(startupCtx); err != nil {
		logger.Warn("initial user load failed, session starts empty", zap.Error(err))
	}
	if err := ticketStore.LoadTickets(startupCtx); err != nil {
		logger.Warn("initial ticket load failed", zap.Error(err))
	}
	cancel()

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, userRepo, redis),
		Tickets:  handlers.NewTicketsHandler(ticketStore, sess, directory),
		Comments: handlers.NewCommentsHandler(ticketStore, commentRepo, sess, directory),
		Users:    handlers.NewUsersHandler(directory, sess),
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
