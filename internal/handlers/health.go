package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amezghal/careergate/internal/cache"
	"github.com/amezghal/careergate/pkg/response"
)

// Pinger checks that the backend answers at all.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports readiness of the gateway's local dependencies.
// Upstream reachability is reported as well, but informationally: the gateway
// stays up while the backend flaps, so probes must not recycle it on
// upstream trouble.
type HealthHandler struct {
	db       *gorm.DB
	store    cache.Store
	upstream Pinger
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(db *gorm.DB, store cache.Store, upstream Pinger) *HealthHandler {
	return &HealthHandler{db: db, store: store, upstream: upstream}
}

// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.pingDB(ctx); err != nil {
			components["database"] = "down"
			healthy = false
		} else {
			components["database"] = "up"
		}
	}

	if h.store != nil {
		if err := h.store.Set(ctx, "health:probe", []byte("ok"), time.Minute); err != nil {
			components["cache"] = "down"
			healthy = false
		} else {
			components["cache"] = "up"
		}
	}

	if h.upstream != nil {
		// Informational only; upstream trouble never degrades the gateway.
		if err := h.upstream.Ping(ctx); err != nil {
			components["upstream"] = "unreachable"
		} else {
			components["upstream"] = "up"
		}
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	response.Success(c, status, gin.H{
		"status":     state,
		"components": components,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
