package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/logoflow/internal/store"
)

// Options wires the router's collaborators. Names and Logos stay nil when
// their provider credentials are missing; DB and History stay nil when
// history is disabled.
type Options struct {
	Names            NameSource
	Logos            LogoSource
	DB               *store.DB
	History          *store.GenerationStore
	Metrics          *Metrics
	DefaultNameModel string
	LogoModel        string
}

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(opts Options, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger, metrics))
	r.Use(Recovery(logger))

	var recorder HistoryRecorder
	if opts.History != nil {
		recorder = opts.History
	}
	var pinger Pinger
	if opts.DB != nil {
		pinger = opts.DB
	}

	healthH := NewHealthHandler(pinger, opts.Names != nil, opts.Logos != nil)
	generateH := NewGenerateHandler(
		opts.Names, opts.Logos, recorder, metrics,
		opts.DefaultNameModel, opts.LogoModel, logger,
	)

	r.Get("/health", healthH.Health)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-names", generateH.Names)
		r.Post("/generate-logo", generateH.Logo)

		if opts.History != nil {
			historyH := NewHistoryHandler(opts.History)
			r.Get("/history", historyH.List)
		}
	})

	return r
}
