package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/handlers"
	"github.com/amezghal/careergate/internal/middleware"
)

const (
	// Credential endpoints get a tight per-IP budget to slow brute forcing.
	authRateLimit  = 10
	authRateWindow = time.Minute
)

func registerAuthRoutes(router *gin.Engine, deps Dependencies) {
	auth := handlers.NewAuthHandler(deps.Manager, deps.Codec)
	limited := middleware.RateLimit(deps.Store, authRateLimit, authRateWindow)

	group := router.Group("/auth")
	group.POST("/login", limited, auth.Login)
	group.POST("/register", limited, auth.Register)
	group.POST("/logout", auth.Logout)

	router.GET("/session/me", middleware.RequireSession(deps.Codec, deps.Manager), auth.Me)
}
