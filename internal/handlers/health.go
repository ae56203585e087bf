package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	rediswrap "ticksy/internal/redis"
	"ticksy/internal/storage"
)

type HealthHandler struct {
	store storage.Store
	redis *rediswrap.Redis
}

func NewHealthHandler(store storage.Store, redis *rediswrap.Redis) *HealthHandler {
	return &HealthHandler{
		store: store,
		redis: redis,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	dbStatus := "up"
	if err := h.store.HealthCheck(); err != nil {
		dbStatus = "down: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	redisStatus := "up"
	if h.redis != nil {
		if err := h.redis.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "down: " + err.Error()
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	} else {
		redisStatus = "disabled"
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "ticksy",
		"version":   "1.0.0",
		"database":  dbStatus,
		"redis":     redisStatus,
	})
}
