package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportactiv/sportactiv/pkg/database"
	"github.com/sportactiv/sportactiv/pkg/redis"
	"github.com/sportactiv/sportactiv/pkg/response"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health reports liveness
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready reports readiness of the backing stores
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{"database": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, "One or more dependencies are unavailable"))
		return
	}
	c.JSON(http.StatusOK, response.Success(checks))
}
