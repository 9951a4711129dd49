package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rangecard/backend/internal/solutions"
)

const serviceVersion = "1.0.0"

var startedAt = time.Now()

// HealthCheck reports liveness and whether the catalog backend answers
func HealthCheck(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"service": "rangecard-api",
			"version": serviceVersion,
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"gravity": svc.Gravity(),
		}

		list, err := svc.Catalog().List(c.Request.Context())
		if err != nil {
			body["status"] = "degraded"
			body["catalog_error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}

		body["status"] = "ok"
		body["cartridges"] = len(list)
		c.JSON(http.StatusOK, body)
	}
}
