package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "bar-inventory/internal/adapters/web"
	"bar-inventory/internal/ai"
	"bar-inventory/internal/app"
	"bar-inventory/internal/config"
	"bar-inventory/internal/core"
	"bar-inventory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info", "text").Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeRepo()

	var capturer core.OrderCapturer
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY is not set: delivery note capture disabled")
	} else {
		capturer = ai.NewAgent(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set: write routes are unauthenticated")
	}

	svc := app.New(repo, capturer, log)
	handler := webAdapter.NewHandler(ctx, svc, webAdapter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		OperatorPIN:    cfg.OperatorPIN,
		UploadDir:      cfg.UploadDir,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", cfg.ServerPort).WithField("store", cfg.Store).Info("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
	log.Info("server stopped")
}
