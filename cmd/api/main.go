package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/config"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/database"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/handlers"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/logger"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/notify"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/server"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("close database", zap.Error(err))
		}
	}()

	posts := database.NewPostStore(db.GetDB())
	users := database.NewUserStore(db.GetDB())
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	notifier := notify.New(cfg.Twilio, log)
	accounts := service.NewAccountService(users, tokens, log)
	// A blank ADMIN_USERNAME falls back to the email's local part.
	if a := cfg.Admin; a.Email != "" && a.Password != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := accounts.EnsureAdmin(ctx, a.Username, a.Email, a.Password)
		cancel()
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	handler := handlers.NewHandler(handlers.Services{
		Moderation:   service.NewModerationService(posts, notifier, log),
		Interactions: service.NewInteractionService(posts, log),
		Queries:      service.NewQueryService(posts),
		Editor:       service.NewPostService(posts, log),
		Accounts:     accounts,
	}, log)

	srv := server.NewServer(cfg, log, db, handler, tokens, accounts)
	defer srv.Close()
	httpServer := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited gracefully")
	return nil
}
