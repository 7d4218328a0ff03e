package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/solacehq/solace/internal/adapters/http"
	wsignal "github.com/solacehq/solace/internal/adapters/signal"
	"github.com/solacehq/solace/internal/app"
	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/core"
	"github.com/solacehq/solace/internal/genai"
	"github.com/solacehq/solace/internal/store"
	transport "github.com/solacehq/solace/internal/transport/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	users := store.NewUsers(db)

	var gen genai.Generator
	if cfg.GenAIKey != "" {
		gen, err = genai.NewGemini(genai.GeminiConfig{
			APIKey: cfg.GenAIKey,
			Model:  cfg.GenAIModel,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build genai client")
		}
	} else {
		log.Warn().Msg("no genai key configured, chat support disabled")
		gen = genai.Disabled{}
	}

	rooms := core.NewRoomRegistry()
	clients := app.NewClientRegistry()
	presence := app.NewPresence(rooms, clients)
	ctl := wsignal.NewController(presence, clients, cfg)
	handlers := transport.NewHandlers(users, gen)

	r := router.SetupRouter(ctx, cfg, ctl, handlers)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Solace server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
