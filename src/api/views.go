package api

import (
	"net/http"
	handlers "painel/src/api/handlers"
	"painel/src/indicators"
	"painel/src/utils"
	"painel/src/utils/metrics"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler

	panels  []indicators.Panel
	metrics *metrics.Recorder
}

func NewServer(handler *handlers.Handler, panels []indicators.Panel, recorder *metrics.Recorder, logger *logrus.Logger, allowedOrigins []string) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		panels:  panels,
		metrics: recorder,
	}
	server.Router.Use(middleware.Recoverer)
	server.Router.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)
	server.Router.Use(utils.RequestLogger(logger))
	server.Router.Use(recorder.Middleware)
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Handle("/metrics", s.metrics.Handler())

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/indicators", s.Handler.ListIndicators)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.Handler.GetSeries)
			r.Get("/chart", s.Handler.GetChart)
			r.Get("/xlsx", s.Handler.ExportXLSX)
			r.Post("/refresh", s.Handler.Refresh)
		})
	})

	for _, panel := range s.panels {
		s.Router.Get("/painel_"+string(panel), s.Handler.PanelPage(panel))
		s.Router.Get("/painel_"+string(panel)+"/pdf", s.Handler.PanelPDF(panel))
		s.Router.Get("/painel_"+string(panel)+"/xlsx", s.Handler.PanelXLSX(panel))
	}
}

func NewHTTPServer(server http.Handler, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
	return httpServer
}
