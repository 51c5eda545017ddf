// @title TriCard API
// @version 1.0
// @description Three-card wagering rooms: wager batches, reveals, payouts and ticket wallets.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/TriCard_Go/internal/bootstrap"
	"github.com/osse101/TriCard_Go/internal/concurrency"
	"github.com/osse101/TriCard_Go/internal/config"
	"github.com/osse101/TriCard_Go/internal/realtime"
	"github.com/osse101/TriCard_Go/internal/round"
	"github.com/osse101/TriCard_Go/internal/server"
	"github.com/osse101/TriCard_Go/internal/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	bus, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		storage.Close()
		os.Exit(1)
	}

	hub := realtime.NewHub()
	hub.Start()

	walletSvc := wallet.NewService(storage.Ledger, concurrency.NewLockManager())
	roundSvc := round.NewService(storage.Rooms, storage.Members, walletSvc, concurrency.NewRoomQueue(), bus, hub, round.Options{
		StartingTickets: cfg.StartingTickets,
		MemberCacheSize: cfg.MemberCacheSize,
		MemberCacheTTL:  cfg.MemberCacheTTL,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.WSAllowedOrigins,
		Version:        cfg.Version,
	}, storage.DBPool(), roundSvc, walletSvc, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       srv,
		RoundService: roundSvc,
		Hub:          hub,
		Storage:      storage,
	})
}
