package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/handler"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
	"github.com/osse101/ShadowArmy_Go/internal/metrics"
	"github.com/osse101/ShadowArmy_Go/internal/sse"
)

// Dependencies are the services the HTTP API exposes. Activity and DB may be nil.
type Dependencies struct {
	Game     game.Service
	Activity eventlog.Service
	Hub      *sse.Hub
	DB       handler.Pinger
}

// Server wraps the HTTP server. Every request gets a server span.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           otelhttp.NewHandler(NewRouter(apiKey, trustedProxies, deps), OTelOperationName),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full middleware stack and route table
func NewRouter(apiKey string, trustedProxies []string, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	player := handler.NewPlayerHandler(deps.Game)
	hunting := handler.NewHuntingHandler(deps.Game)
	shadows := handler.NewShadowHandler(deps.Game)
	world := handler.NewWorldHandler(deps.Game)
	saves := handler.NewSaveHandler(deps.Game)
	admin := handler.NewAdminHandler(deps.Game)
	activity := handler.NewActivityHandler(deps.Activity)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/player", func(r chi.Router) {
			r.Get("/", player.HandleGetPlayer)
			r.Post("/stats", player.HandleAllocateStat)
		})

		r.Route("/hunting", func(r chi.Router) {
			r.Post("/start", hunting.HandleStart)
			r.Post("/stop", hunting.HandleStop)
			r.Post("/complete", hunting.HandleComplete)
			r.Get("/status", hunting.HandleStatus)
		})

		r.Route("/shadows", func(r chi.Router) {
			r.Get("/", shadows.HandleList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", shadows.HandleGet)
				r.Post("/deploy", shadows.HandleDeploy)
				r.Post("/recall", shadows.HandleRecall)
				r.Post("/reassign", shadows.HandleReassign)
			})
		})
		r.Get("/deployments", shadows.HandleDeployments)

		r.Get("/catalog", world.HandleCatalog)
		r.Get("/areas", world.HandleUnlockedAreas)
		r.Get("/stats", world.HandleStats)
		r.Get("/exp-rate", world.HandleExpRate)

		r.Route("/game", func(r chi.Router) {
			r.Post("/save", saves.HandleSave)
			r.Post("/load", saves.HandleLoad)
			r.Get("/snapshot", saves.HandleSnapshot)
		})

		r.Get("/activity", activity.HandleRecent)

		// Live event stream
		if deps.Hub != nil {
			r.Get("/events", sse.Handler(deps.Hub))
			r.Get("/ws", sse.WebSocketHandler(deps.Hub))
		}

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/experience", admin.HandleApplyExperience)
			r.Post("/shadows", admin.HandleExtractShadow)
			r.Post("/shadows/{id}/experience", admin.HandleShadowExperience)
			r.Post("/reconcile", admin.HandleReconcile)
			r.Post("/reset", admin.HandleReset)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

var errHijackUnsupported = errors.New("response writer does not support hijacking")

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
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

// Flush keeps the SSE stream working behind the logging wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets WebSocket upgrades see through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		// Honour an upstream request ID so logs correlate across hops
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server. It returns nil once Stop has been called.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
