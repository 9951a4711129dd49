package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/solutions"
)

// GetConfig returns the solver settings clients need to interpret results
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings := cfg.Solver()
		c.JSON(http.StatusOK, gin.H{
			"gravity":          settings.Gravity,
			"trajectory_steps": settings.TrajectorySteps,
			"max_steps":        solutions.MaxSteps,
			"max_batch_size":   settings.MaxBatchSize,
		})
	}
}
