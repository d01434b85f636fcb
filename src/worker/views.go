package worker

import (
	"net/http"
	apihandlers "painel/src/api/handlers"
	"painel/src/utils"
	"painel/src/utils/metrics"
	handlers "painel/src/worker/handlers"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler

	metrics *metrics.Recorder
}

func NewServer(handler *handlers.Handler, recorder *metrics.Recorder, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		metrics: recorder,
	}
	server.Router.Use(middleware.Recoverer)
	server.Router.Use(utils.RequestLogger(logger))
	server.Router.Use(recorder.Middleware)
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", apihandlers.Healthcheck)
	s.Router.Handle("/metrics", s.metrics.Handler())
	s.Router.Get("/api/schedules", s.Handler.GetSchedules)
	s.Router.Route("/api/refresh", func(r chi.Router) {
		r.Post("/all", s.Handler.RefreshAll)
		r.Post("/{key}", s.Handler.Refresh)
	})
}

func NewHTTPServer(server http.Handler, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: refreshWriteTimeout,
		Handler:      server,
	}
	return httpServer
}

const refreshWriteTimeout = 6 * time.Minute
