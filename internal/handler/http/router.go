package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything mounted under /api/v1
type Handlers struct {
	DayStatus  DayStatusHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Employee   EmployeeHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Metrics is served at /metrics; nil uses the default prometheus registry
	Metrics http.Handler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/day-statuses/{employeeID}/{date}", func(r chi.Router) {
				r.Get("/", h.DayStatus.Get)
				r.Post("/recompute", h.DayStatus.Recompute)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/override", h.DayStatus.SetOverride)
					r.Delete("/override", h.DayStatus.ClearOverride)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly-grid", h.Report.MonthlyGrid)
				r.Get("/employees/{employeeID}/history", h.Report.History)
			})

			r.Get("/dashboard/range", h.Dashboard.Range)

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Create)
				r.Get("/{id}", h.Attendance.Get)
				r.Put("/{id}", h.Attendance.Update)
				r.Delete("/{id}", h.Attendance.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)
			})

			r.Get("/employees", h.Employee.List)
		})
	})
	return r
}
