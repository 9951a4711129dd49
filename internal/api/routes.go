package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rangecard/backend/internal/api/handlers"
	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/middleware"
	"github.com/rangecard/backend/internal/solutions"
	"github.com/rangecard/backend/internal/ws"
)

// SetupRoutes configures all API routes. Admin routes are only mounted when db is set;
// history may be nil when no database is configured.
func SetupRoutes(router *gin.Engine, db *sqlx.DB, svc *solutions.Service, history solutions.History, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(svc))
		v1.GET("/config", handlers.GetConfig(cfg))

		v1.GET("/cartridges", handlers.ListCartridges(svc.Catalog()))
		v1.GET("/cartridges/:id", handlers.GetCartridge(svc.Catalog()))

		solve := v1.Group("/solve")
		{
			solve.POST("", handlers.Solve(svc))
			solve.POST("/batch", handlers.SolveBatch(svc))
			solve.POST("/trajectory.csv", handlers.SolveCSV(svc))
			solve.POST("/trajectory.png", handlers.SolvePlot(svc))
			solve.POST("/facts", handlers.SolveFacts(svc))
		}

		v1.GET("/solutions", handlers.ListSolutions(history))

		wsGroup := v1.Group("/ws", middleware.WebSocketCORSCheck(cfg))
		{
			wsGroup.GET("/trajectory", handlers.HandleTrajectoryWebSocket(svc))
			if hub != nil {
				wsGroup.GET("/feed", handlers.HandleFeedWebSocket(hub))
			}
		}

		if db == nil {
			log.Println("[API] No database configured, admin routes disabled")
			return
		}

		v1.POST("/admin/login", handlers.AdminLogin(db, cfg))

		adminGroup := v1.Group("/admin", handlers.AdminAuthMiddleware(cfg))
		{
			adminGroup.GET("/me", handlers.AdminMe())
			adminGroup.PUT("/cartridges/:id", handlers.UpsertCartridge(svc.Catalog(), db))
			adminGroup.DELETE("/cartridges/:id", handlers.DeleteCartridge(svc.Catalog(), db))
			adminGroup.GET("/audit", handlers.GetAdminAuditLogs(db))
			adminGroup.GET("/config", handlers.GetAdminRuntimeConfig(db))
			adminGroup.PUT("/config/:key", handlers.UpdateAdminRuntimeConfig(db, cfg))
		}
	}
}
