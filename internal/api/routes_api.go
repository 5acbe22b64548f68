package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/handlers"
	"github.com/amezghal/careergate/internal/middleware"
	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/internal/upstream"
)

// JSON API routes. These answer 401 instead of redirecting, so page scripts
// can react to an expired session without following a redirect chain.
func registerAPIRoutes(router *gin.Engine, deps Dependencies) {
	requireSession := middleware.RequireSession(deps.Codec, deps.Manager)

	if deps.Config.Features.Notifications.Enabled {
		notif := handlers.NewNotificationHandler(deps.Notifications, deps.Hub)
		group := router.Group("/notifications", requireSession)
		group.GET("", notif.List)
		group.GET("/stream", notif.Stream)
		group.POST("/:id/read", notif.MarkRead)
		group.DELETE("/clear-read", notif.ClearRead)
	}

	if deps.Config.Features.AuditTrail.Enabled && deps.Audit != nil {
		auditHandler := handlers.NewAuditHandler(deps.Audit)
		router.GET("/admin/audit", requireSession, middleware.RequireRole(session.RoleAdmin), auditHandler.List)
	}

	// Everything under /api is business data owned by the backend. The proxy
	// swaps the session cookie for the bearer token before forwarding.
	proxy := upstream.NewProxy(deps.Upstream.BaseURL(), func(r *http.Request) string {
		sess, err := deps.Codec.FromRequest(r)
		if err != nil {
			return ""
		}
		return sess.Token
	})
	router.Any("/api/*backendPath", requireSession, gin.WrapH(proxy))
}
