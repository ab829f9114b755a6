package controller

import (
	"context"
	"net/http"
	"time"

	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary Service health
// @Tags health
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "time": time.Now().Format(util.TimeFormat)}
	healthy := true

	if sqlDB, err := ctl.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "down"
		healthy = false
	} else {
		status["database"] = "up"
	}

	if ctl.Redis != nil {
		if err := ctl.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			healthy = false
		} else {
			status["redis"] = "up"
		}
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	util.Success(c, status)
}
