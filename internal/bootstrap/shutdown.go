package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/TriCard_Go/internal/realtime"
	"github.com/osse101/TriCard_Go/internal/round"
	"github.com/osse101/TriCard_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server       *server.Server
	RoundService round.Service
	Hub          *realtime.Hub
	Storage      *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Round service (drain room queues so in-flight wager batches finish)
// 3. Realtime hub (close client channels)
// 4. Storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.RoundService != nil {
		shutdownService(ctx, ServiceNameRound, components.RoundService)
	}

	if components.Hub != nil {
		components.Hub.Stop()
		slog.Info(LogMsgRealtimeHubStopped)
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
