package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/osse101/TriCard_Go/internal/database"
	"github.com/osse101/TriCard_Go/internal/handler"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/metrics"
	"github.com/osse101/TriCard_Go/internal/realtime"
	"github.com/osse101/TriCard_Go/internal/round"
	"github.com/osse101/TriCard_Go/internal/wallet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string
	Version        string
}

// Server is the HTTP + realtime front of the round engine
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance. dbPool may be nil when the in-memory
// store is in use.
func NewServer(opts Options, dbPool database.Pool, rounds round.Service, walletSvc wallet.Service, hub *realtime.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, rounds, walletSvc, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree
func NewRouter(opts Options, dbPool database.Pool, rounds round.Service, walletSvc wallet.Service, hub *realtime.Hub) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	ips := newClientIPResolver(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(ips, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Browsers cannot attach the API key to websocket or EventSource requests;
	// the websocket is origin checked instead.
	r.Get("/ws", realtime.WebSocketHandler(hub, realtime.NewDispatcher(rounds, hub), realtime.NewUpgrader(opts.AllowedOrigins)))

	rooms := handler.NewRoomHandler(rounds)
	wallets := handler.NewWalletHandler(walletSvc)

	auth := AuthMiddleware(opts.APIKey, ips, detector)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Get("/{id}/events", realtime.SSEHandler(hub))

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", rooms.HandleCreateRoom)
				r.Get("/", rooms.HandleListRooms)
				r.Post("/join", rooms.HandleJoinRoom)
				r.Get("/{id}/state", rooms.HandleRoomState)
				r.Post("/{id}/dealer", rooms.HandleTakeOverDealer)
				r.Post("/{id}/wagers", rooms.HandleApplyWagerBatch)
				r.Post("/{id}/wagers/remove", rooms.HandleRemoveWager)
				r.Post("/{id}/reveal", rooms.HandleReveal)
				r.Post("/{id}/reset", rooms.HandleReset)
				r.Post("/{id}/close", rooms.HandleCloseRoom)
			})
		})

		r.With(auth).Get("/wallet/{memberID}", wallets.HandleGetWallet)
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code. It passes
// Flush and Hijack through so SSE and websocket upgrades survive the middleware.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, quiet := quietPaths[r.URL.Path]; quiet {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"route", routePattern(r),
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// quietPaths are polled by probes and scrapers and are not logged
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// redactHeaders copies h with credential headers masked
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if isCredentialHeader(k) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

func isCredentialHeader(name string) bool {
	for _, c := range []string{HeaderAPIKey, HeaderAuthorization, HeaderCookie} {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

// routePattern returns the matched chi pattern ("/api/v1/rooms/{id}/reveal"), keeping room ids out of logs
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the root handler, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
