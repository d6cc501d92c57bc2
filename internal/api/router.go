package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/cameras"
	"github.com/technosupport/site-safety/internal/employees"
	"github.com/technosupport/site-safety/internal/logs"
	"github.com/technosupport/site-safety/internal/middleware"
)

// Deps carries the stores built in cmd/server. Nothing in this package holds global state.
type Deps struct {
	Logs      *logs.Store
	Cameras   *cameras.Service
	Employees *employees.Service
	Logger    *zap.Logger

	WebRoot        string
	AllowedOrigins []string
	// RequestTimeout bounds handler execution; zero disables it.
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	logger := orNop(d.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(d.AllowedOrigins))
	if d.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(d.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	logH := NewLogHandler(d.Logs, logger)
	r.Get("/logs", logH.Query)

	r.Route("/api", func(r chi.Router) {
		camH := NewCameraHandler(d.Cameras, logger)
		r.Get("/cameras", camH.List)
		r.Post("/cameras", camH.Create)
		r.Put("/cameras/{id}", camH.Update)
		r.Delete("/cameras/{id}", camH.Delete)

		empH := NewEmployeeHandler(d.Employees, logger)
		r.Get("/employees", empH.List)
		r.Post("/employees", empH.Create)
		r.Put("/employees/{id}", empH.Update)
		r.Delete("/employees/{id}", empH.Delete)
	})

	pages := NewPageHandler(d.WebRoot)
	r.Get("/", pages.Index)
	r.Get("/{page}", pages.Page)
	r.Handle("/static/*", pages.Static())
	r.Get("/playback/*", pages.Playback)

	return r
}
