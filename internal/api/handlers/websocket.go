package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rangecard/backend/internal/solutions"
	"github.com/rangecard/backend/internal/ws"
)

// HandleTrajectoryWebSocket streams trajectory samples for each request sent on the socket
func HandleTrajectoryWebSocket(svc *solutions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws.ServeTrajectory(svc, c.Writer, c.Request)
	}
}

// HandleFeedWebSocket subscribes the client to the live solution feed
func HandleFeedWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeFeed(c.Writer, c.Request)
	}
}
