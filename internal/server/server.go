package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwesterdijk/spullendelen/internal/config"
	"github.com/mwesterdijk/spullendelen/internal/events"
	"github.com/mwesterdijk/spullendelen/internal/handler"
	"github.com/mwesterdijk/spullendelen/internal/middleware"
	"github.com/mwesterdijk/spullendelen/internal/store"
)

type Server struct {
	db          *sql.DB
	feed        *events.Feed
	authH       *handler.AuthHandler
	categorieH  *handler.CategorieHandler
	spullenH    *handler.SpullenHandler
	delerH      *handler.DelerHandler
	rateLimiter *middleware.RateLimiter
	cfg         *config.Config
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	feed := events.NewFeed(logger.With("component", "events"))

	userStore := store.NewUserStore(db)
	categorieStore := store.NewCategorieStore(db)
	spullenStore := store.NewSpullenStore(db)
	delerStore := store.NewDelerStore(db)

	return &Server{
		db:          db,
		feed:        feed,
		authH:       handler.NewAuthHandler(userStore, []byte(cfg.JWTSecret), cfg.TokenTTL, logger.With("component", "auth")),
		categorieH:  handler.NewCategorieHandler(categorieStore, feed, logger.With("component", "categorie")),
		spullenH:    handler.NewSpullenHandler(spullenStore, feed, logger.With("component", "spullen")),
		delerH:      handler.NewDelerHandler(delerStore, feed, logger.With("component", "deler")),
		rateLimiter: middleware.NewRateLimiter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// RateLimiter exposes the limiter so the cleanup goroutine in main can
// evict expired entries.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Router builds the full route table. Read endpoints are public; every
// mutation sits behind the bearer-token middleware.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth([]byte(s.cfg.JWTSecret))
	loginLimit := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)

	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.Handle("POST /api/register", loginLimit(http.HandlerFunc(s.authH.Register)))
	mux.Handle("POST /api/login", loginLimit(http.HandlerFunc(s.authH.Login)))

	// Categorie
	mux.HandleFunc("GET /api/categorie", s.categorieH.List)
	mux.HandleFunc("GET /api/categorie/{huisId}", s.categorieH.GetByID)
	mux.Handle("POST /api/categorie", protected(s.categorieH.Create))
	mux.Handle("PUT /api/categorie/{huisId}", protected(s.categorieH.Update))
	mux.Handle("DELETE /api/categorie/{huisId}", protected(s.categorieH.Delete))

	// Spullen
	mux.HandleFunc("GET /api/categorie/{huisId}/spullen", s.spullenH.List)
	mux.HandleFunc("GET /api/categorie/{huisId}/spullen/{spullenId}", s.spullenH.GetByID)
	mux.Handle("POST /api/categorie/{huisId}/spullen", protected(s.spullenH.Create))
	mux.Handle("PUT /api/categorie/{huisId}/spullen/{spullenId}", protected(s.spullenH.Update))
	mux.Handle("DELETE /api/categorie/{huisId}/spullen/{spullenId}", protected(s.spullenH.Delete))

	// Delers
	mux.HandleFunc("GET /api/categorie/{huisId}/spullen/{spullenId}/delers", s.delerH.List)
	mux.Handle("POST /api/categorie/{huisId}/spullen/{spullenId}/delers", protected(s.delerH.Register))
	mux.Handle("DELETE /api/categorie/{huisId}/spullen/{spullenId}/delers", protected(s.delerH.Unregister))

	api := middleware.WithTimeout(s.cfg.RequestTimeout)(mux)

	// The WebSocket feed bypasses the request deadline; subscriptions are
	// long-lived.
	root := http.NewServeMux()
	root.HandleFunc("GET /ws", s.feed.Handler())
	root.Handle("/", api)

	return middleware.RequestLogger(s.logger.With("component", "http"))(root)
}
