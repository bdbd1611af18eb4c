package main

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

	"email-writer/internal/client"
	"email-writer/internal/config"
	"email-writer/internal/generator"
	"email-writer/internal/handler"

	"golang.org/x/sync/errgroup"
)

func main() {

	// Load configuration first
	cfg := config.LoadConfig()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging with configurable level, format, and output
	logger, logCleanup, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()
	slog.SetDefault(logger)

	// Create LLM once at startup
	llm, err := client.NewLLM(cfg.LLM)
	if err != nil {
		slog.Error("create llm failed", "error", err)
		os.Exit(1)
	}
	slog.Info("llm initialized", "backend", llm.Name(), "url", cfg.LLM.URL(), "timeout", cfg.LLM.Timeout)

	replyGenerator := generator.NewService(llm)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.NewRouter(cfg, replyGenerator),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal (or listener failure) to gracefully shutdown the server
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("server stopping")

		// In-flight generations are bounded by the LLM timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		logCleanup()
		os.Exit(1)
	}

	slog.Info("server stopped")
}
