package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/TaskQuest_Go/internal/boss"
	"github.com/osse101/TaskQuest_Go/internal/character"
	"github.com/osse101/TaskQuest_Go/internal/database"
	"github.com/osse101/TaskQuest_Go/internal/handler"
	"github.com/osse101/TaskQuest_Go/internal/logger"
	"github.com/osse101/TaskQuest_Go/internal/metrics"
	"github.com/osse101/TaskQuest_Go/internal/progression"
	"github.com/osse101/TaskQuest_Go/internal/quest"
	"github.com/osse101/TaskQuest_Go/internal/reward"
	"github.com/osse101/TaskQuest_Go/internal/stats"
)

// Dependencies are the services routed by the server. Every request acts for
// UserID.
type Dependencies struct {
	DBPool           database.Pool
	UserID           string
	Rules            *progression.Rules
	CharacterService character.Service
	QuestService     quest.Service
	BossService      boss.Service
	RewardService    reward.Service
	StatsService     stats.Service
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, deps Dependencies) *Server {
	r := NewRouter(trustedProxies, deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// NewRouter builds the full route tree with its middleware stack
func NewRouter(trustedProxies []string, deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	characterHandlers := handler.NewCharacterHandlers(deps.CharacterService, deps.UserID)
	questHandlers := handler.NewQuestHandlers(deps.QuestService, deps.UserID)
	bossHandlers := handler.NewBossHandlers(deps.BossService, deps.UserID)
	rewardHandlers := handler.NewRewardHandlers(deps.RewardService, deps.UserID)
	progressionHandlers := handler.NewProgressionHandlers(deps.Rules)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(userContextMiddleware(deps.UserID))

		r.Route("/character", func(r chi.Router) {
			r.Get("/", characterHandlers.HandleGet())
			r.Patch("/", characterHandlers.HandleUpdate())
		})

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", questHandlers.HandleList())
			r.Post("/", questHandlers.HandleCreate())
			r.Get("/history", questHandlers.HandleHistory())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", questHandlers.HandleGet())
				r.Patch("/", questHandlers.HandleUpdate())
				r.Delete("/", questHandlers.HandleDelete())
				r.Post("/tasks", questHandlers.HandleAddTask())
			})
		})

		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Put("/", questHandlers.HandleUpdateTask())
			r.Patch("/", questHandlers.HandleToggleTask())
			r.Delete("/", questHandlers.HandleDeleteTask())
		})

		r.Route("/bosses", func(r chi.Router) {
			r.Get("/", bossHandlers.HandleList())
			r.Post("/", bossHandlers.HandleCreate())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bossHandlers.HandleGet())
				r.Patch("/", bossHandlers.HandleRecordAttempt())
				r.Delete("/", bossHandlers.HandleDelete())
			})
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Get("/", rewardHandlers.HandleList())
			r.Post("/", rewardHandlers.HandleCreate())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rewardHandlers.HandleGet())
				r.Patch("/", rewardHandlers.HandleUpdate())
				r.Delete("/", rewardHandlers.HandleDelete())
				r.Post("/redeem", rewardHandlers.HandleRedeem())
			})
		})

		r.Get("/stats", handler.HandleGetStats(deps.StatsService, deps.UserID))

		r.Route("/progression", func(r chi.Router) {
			r.Get("/levels", progressionHandlers.HandleLevels())
			r.Get("/reward", progressionHandlers.HandleRewardPreview())
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
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

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

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

// userContextMiddleware tags API requests with the single acting user so
// service logs carry it
func userContextMiddleware(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logger.WithUserID(r.Context(), userID)))
		})
	}
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
