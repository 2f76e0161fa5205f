package api

import (
	"context"
	"net/http"
	"time"

	"toy-rental-storefront/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const healthProbeTimeout = 2 * time.Second

type HealthHandler struct {
	uow   shared.UnitOfWork
	redis redis.Cmdable
}

func NewHealthHandler(uow shared.UnitOfWork, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		uow:   uow,
		redis: rdb,
	}
}

// @Summary Health check
// @Description Reports whether Postgres and Redis answer
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok", "redis": "ok"}
	code := http.StatusOK

	err := h.uow.WithDB(ctx, func(ctx context.Context, db shared.DBTX) error {
		var one int
		return db.QueryRow(ctx, "SELECT 1").Scan(&one)
	})
	if err != nil {
		status["database"] = "unavailable"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		status["redis"] = "unavailable"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, status)
}
