package handler

import (
	"net/http"

	"lending/core"
	"lending/handler/hc"
	"lending/handler/render"
	"lending/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	session  core.Session
	lendingz core.ILendingService
	events   core.IEventStore
	accounts core.IAccountStore
	version  string
}

// New new server function
func New(
	session core.Session,
	lendingz core.ILendingService,
	events core.IEventStore,
	accounts core.IAccountStore,
	version string,
) Server {
	return Server{
		session:  session,
		lendingz: lendingz,
		events:   events,
		accounts: accounts,
		version:  version,
	}
}

// Handler root handler, rest apis are mounted at /api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w)
	})

	mux.Mount("/hc", hc.Handle(s.version))
	mux.Mount("/metrics", promhttp.Handler())
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.session, s.lendingz, s.events, s.accounts)
}
