package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "go-marketplace/cmd/api/router/v1"
	"go-marketplace/config"
	"go-marketplace/internal/infrastructure/auth"
	cacheAdapter "go-marketplace/internal/infrastructure/cache/adapter"
	cacheport "go-marketplace/internal/infrastructure/cache/port"
	"go-marketplace/internal/infrastructure/database"
	queueAdapter "go-marketplace/internal/infrastructure/queue/adapter"
	"go-marketplace/internal/infrastructure/realtime"
	"go-marketplace/internal/pkg/chat/application/relay"
	"go-marketplace/internal/pkg/chat/application/task"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repoAdapter "go-marketplace/internal/pkg/chat/persistence/repository/adapter"
	chatHTTP "go-marketplace/internal/pkg/chat/presentation/http"
	"go-marketplace/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found or could not be loaded: %v", err)
	}

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Development: cfg.Logger.Development})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.Connect(connectCtx, cfg.Database.URL)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "err", err)
	}
	defer pool.Close()

	if err := database.Migrate(connectCtx, pool); err != nil {
		zlog.Fatalw("failed to apply schema", "err", err)
	}

	// Redis is optional: without it the user display cache degrades to direct
	// DB reads and the queued send path is unavailable.
	var cache cacheport.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cacheAdapter.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			zlog.Warnw("redis unavailable, continuing without cache", "err", err)
		} else {
			cache = redisCache
			defer func() { _ = redisCache.Close() }()
		}
	}

	repo := repoAdapter.NewPgChatRepository(pool)
	rooms := realtime.NewRouter()
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	chatRelay := relay.New(
		rooms,
		usecase.NewSendMessageUseCase(repo),
		usecase.NewMarkAsReadUseCase(repo),
		zlog,
	)

	deps := chatHTTP.Deps{
		Pool:     pool,
		Cache:    cache,
		Relay:    chatRelay,
		Verifier: verifier,
	}

	if cfg.Redis.URL != "" {
		queueClient, err := queueAdapter.NewAsynqClient(cfg.Redis.URL)
		if err != nil {
			zlog.Fatalw("failed to create queue client", "err", err)
		}
		defer func() { _ = queueClient.Close() }()
		deps.Queue = queueClient

		queueServer, err := queueAdapter.NewAsynqServer(cfg.Redis.URL, 10, zlog)
		if err != nil {
			zlog.Fatalw("failed to create queue server", "err", err)
		}
		task.RegisterSendMessageTask(queueServer, repo, rooms, zlog)
		go func() {
			if err := queueServer.Run(ctx); err != nil {
				zlog.Errorw("queue server stopped", "err", err)
			}
		}()
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zlog.Infow("api listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("http server failed", "err", err)
		}
	}()

	<-ctx.Done()
	zlog.Infow("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("graceful shutdown failed", "err", err)
	}
}
