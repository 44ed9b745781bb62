package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gatherly/server/internal/api/handlers"
	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/domain/dashboard"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/gatherly/server/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// BuildInfo carries ldflags-injected build metadata.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// Dependencies are the wired services the router exposes. Construction
// happens in the serve command; the router only arranges routes and
// middleware around what it is given.
type Dependencies struct {
	Config    config.Config
	Logger    zerolog.Logger
	Pool      *pgxpool.Pool
	Users     *users.Service
	Events    *events.Service
	Dashboard *dashboard.Service
	Build     BuildInfo
}

// NewRouter assembles the HTTP surface. The middleware chain, outermost
// first: security headers, CORS, correlation ID, tracing, metrics,
// request logging. Rate limiting and bearer auth wrap individual routes,
// with the tier set before the limiter so login gets its stricter budget.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	env := cfg.Environment

	authHandler := handlers.NewAuthHandler(deps.Users, env)
	eventsHandler := handlers.NewEventsHandler(deps.Events, env)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard, env)
	healthChecker := handlers.NewHealthChecker(deps.Pool, deps.Build.Version, deps.Build.GitCommit)

	requireAuth := middleware.BearerAuth(deps.Users, env)
	rateLimit := middleware.RateLimit(cfg.RateLimit)
	loginTier := middleware.WithRateLimitTierHandler(middleware.TierLogin)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.Health())
	mux.Handle("/health/detailed", healthChecker.Detailed())
	mux.Handle("/healthz", handlers.Health())
	mux.Handle("/readyz", handlers.Readyz())
	mux.Handle("/version", VersionHandler(deps.Build.Version, deps.Build.GitCommit, deps.Build.BuildDate))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(rateLimit(http.HandlerFunc(authHandler.Login))),
	}))

	mux.Handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet:  rateLimit(requireAuth(http.HandlerFunc(eventsHandler.List))),
		http.MethodPost: rateLimit(requireAuth(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: rateLimit(requireAuth(http.HandlerFunc(eventsHandler.Get))),
	}))
	mux.Handle("/events/{id}/rsvp", methodMux(map[string]http.Handler{
		http.MethodPost: rateLimit(requireAuth(http.HandlerFunc(eventsHandler.RSVP))),
	}))

	mux.Handle("/dashboard/summary", methodMux(map[string]http.Handler{
		http.MethodGet: rateLimit(requireAuth(http.HandlerFunc(dashboardHandler.Summary))),
	}))

	var handler http.Handler = mux
	handler = middleware.RequestLogging(deps.Logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(deps.Logger)(handler)
	handler = middleware.CORS(cfg.CORS, deps.Logger)(handler)
	handler = middleware.SecurityHeaders(env == "production")(handler)

	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
