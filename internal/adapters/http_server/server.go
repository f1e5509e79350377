package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RequestTimeout time.Duration // 0 means 15s
	RateLimitRPS   float64       // <= 0 disables limiting
	RateLimitBurst int
}

type Server struct{ mux *chi.Mux }

func New(o Options) *Server {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 15 * time.Second
	}
	m := chi.NewRouter()

	// middlewares must be registered before any route
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	m.Use(Timeout(o.RequestTimeout))
	m.Use(RateLimit(o.RateLimitRPS, o.RateLimitBurst))

	// mounted subrouters inherit these
	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	})

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
