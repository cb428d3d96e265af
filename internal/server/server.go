package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/database"
	"github.com/abelzach/KaroBuddy/internal/modules/bias"
	"github.com/abelzach/KaroBuddy/internal/modules/budget"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
	"github.com/abelzach/KaroBuddy/internal/modules/genome"
	"github.com/abelzach/KaroBuddy/internal/modules/goals"
	"github.com/abelzach/KaroBuddy/internal/modules/transactions"
)

// Config holds server configuration
type Config struct {
	Port    int
	DevMode bool
	Log     zerolog.Logger
	DB      *database.DB

	TransactionsHandler *transactions.Handler
	CashFlowHandler     *cashflow.Handler
	BiasHandler         *bias.Handler
	BudgetHandler       *budget.Handler
	GoalsHandler        *goals.Handler
	GenomeHandler       *genome.Handler
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *database.DB
	system *SystemHandlers
	cfg    Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		db:     cfg.DB,
		system: NewSystemHandlers(cfg.DB, cfg.Log),
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.system.HandleStatus)
		})

		// Stateless core: forecast, bias detection, budget allocation
		r.Post("/forecast", s.cfg.CashFlowHandler.HandleForecast)
		r.Post("/bias/detect", s.cfg.BiasHandler.HandleDetect)
		r.Post("/budget/allocate", s.cfg.BudgetHandler.HandleAllocate)

		// Ledger
		r.Post("/transactions", s.cfg.TransactionsHandler.HandleCreate)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/transactions", s.cfg.TransactionsHandler.HandleGetByUser)

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", s.cfg.GoalsHandler.HandleList)
				r.Post("/", s.cfg.GoalsHandler.HandleCreate)
				r.Post("/{name}/allocate", s.cfg.GoalsHandler.HandleAllocate)
				r.Delete("/{name}", s.cfg.GoalsHandler.HandleDelete)
			})

			r.Get("/genome", s.cfg.GenomeHandler.HandleGet)
			r.Post("/genome/refresh", s.cfg.GenomeHandler.HandleRefresh)
			r.Get("/genome/stored", s.cfg.GenomeHandler.HandleGetStored)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
