package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessboard-backend/internal/config"
	"github.com/benbeisheim/chessboard-backend/internal/logging"
	"github.com/benbeisheim/chessboard-backend/internal/server"
	"github.com/benbeisheim/chessboard-backend/internal/service"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(2)
	}

	// Initialize services
	sessions := service.NewSessionManager(log,
		service.WithTTL(cfg.SessionTTL),
		service.WithSweepInterval(cfg.SweepInterval),
	)
	boardService := service.NewBoardService(sessions)

	app := server.NewApp(cfg, log, boardService)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	err = app.Listen(cfg.Addr)
	sessions.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
