package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness answers
// immediately; readiness pings MongoDB and Redis first.
type HealthHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                 `json:"status"`
	Dependencies map[string]probeResult `json:"dependencies"`
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := map[string]probeResult{
		"mongodb": h.checkMongo(ctx),
		"redis":   h.checkRedis(ctx),
	}

	status, code := "ok", http.StatusOK
	for _, dep := range deps {
		if dep.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}
	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

func (h *HealthHandler) checkMongo(ctx context.Context) probeResult {
	if err := h.db.Client().Ping(ctx, nil); err != nil {
		return probeResult{Status: "unhealthy", Error: err.Error()}
	}
	if err := h.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return probeResult{Status: "unhealthy", Error: err.Error()}
	}
	return probeResult{Status: "ok"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) probeResult {
	if _, err := h.rdb.Ping(ctx).Result(); err != nil {
		return probeResult{Status: "unhealthy", Error: err.Error()}
	}
	return probeResult{Status: "ok"}
}
