package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hackhub/teamhub/internal/config"
	"hackhub/teamhub/internal/handler"
	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	jwtpkg "hackhub/teamhub/pkg/jwt"
	"hackhub/teamhub/pkg/pagination"
)

func main() {
	// 1. Load configuration
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize token store (Redis or in-memory)
	var tokenStore repository.TokenStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		tokenStore = repository.NewRedisTokenStore(redisClient)
		logger.Info("using Redis token store")
	case "memory":
		tokenStore = repository.NewMemoryTokenStore()
		logger.Info("using in-memory token store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	store := repository.NewPGStore(db)

	// 7. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.SigningKey,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)

	// 8. Initialize services
	authService := service.NewAuthService(store.Users(), tokenStore, jwtManager, logger)
	userService := service.NewUserService(store.Users())
	hackathonService := service.NewHackathonService(store, logger)
	teamService := service.NewTeamService(store, logger)
	invitationService := service.NewInvitationService(store, logger)

	// 9. Bootstrap admin account
	if admin := cfg.Bootstrap.Admin; admin.Username != "" {
		user, err := authService.EnsureAdmin(context.Background(), admin.Username, admin.Password)
		if err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		logger.Info("admin account ready", zap.String("user_id", user.ID.String()))
	}

	// 10. Initialize handlers
	limits := pagination.Limits{
		DefaultSize: cfg.Pagination.DefaultSize,
		MaxSize:     cfg.Pagination.MaxSize,
	}
	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		User:       handler.NewUserHandler(userService, limits),
		Hackathon:  handler.NewHackathonHandler(hackathonService, teamService, limits),
		Team:       handler.NewTeamHandler(teamService, invitationService),
		Invitation: handler.NewInvitationHandler(invitationService),
	}

	// 11. Setup router
	router := handler.SetupRouter(cfg, logger, jwtManager, tokenStore, handlers)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
