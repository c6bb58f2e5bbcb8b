package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/avelune/storefront/internal/storage"
)

type HealthHandler struct {
	backend     storage.Backend
	redisClient *redis.Client
	amqpConn    *amqp.Connection
}

// NewHealthHandler takes nil for collaborators that are not configured;
// Readyz only checks what is present.
func NewHealthHandler(backend storage.Backend, redisClient *redis.Client, amqpConn *amqp.Connection) *HealthHandler {
	return &HealthHandler{backend: backend, redisClient: redisClient, amqpConn: amqpConn}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.backend.Get(ctx, "cart"); err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "storage": "unavailable"})
		return
	}
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "redis": "unavailable"})
			return
		}
	}
	if h.amqpConn != nil && h.amqpConn.IsClosed() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "rabbitmq": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
