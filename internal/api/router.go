package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/amezghal/careergate/internal/app"
	"github.com/amezghal/careergate/internal/audit"
	"github.com/amezghal/careergate/internal/cache"
	"github.com/amezghal/careergate/internal/handlers"
	"github.com/amezghal/careergate/internal/middleware"
	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/internal/upstream"
)

// Dependencies carries the wired services the router needs.
type Dependencies struct {
	Config        *app.Config
	Codec         *session.Codec
	Manager       *session.Manager
	Notifications *notifications.Service
	Hub           *notifications.Hub
	Audit         *audit.Service
	Upstream      *upstream.Client
	Store         cache.Store
	DB            *gorm.DB
}

// NewRouter builds the gin engine with all portal routes registered.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
	)
	router.NoRoute(middleware.NotFoundHandler)

	if deps.Config.Monitoring.Health.Enabled {
		health := handlers.NewHealthHandler(deps.DB, deps.Store, deps.Upstream)
		router.GET("/health", health.Check)
	}
	if deps.Config.Monitoring.Prometheus.Enabled {
		endpoint := deps.Config.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		router.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	registerAuthRoutes(router, deps)
	registerPageRoutes(router, deps)
	registerAPIRoutes(router, deps)

	return router
}
