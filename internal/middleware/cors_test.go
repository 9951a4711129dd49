package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rangecard/backend/internal/config"
)

func wsRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WebSocketCORSCheck(cfg))
	r.GET("/ws", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func upgradeRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestWebSocketCORSCheck(t *testing.T) {
	prod := &config.Config{Environment: "production", FrontendURL: "https://range.example.com"}
	dev := &config.Config{Environment: "development"}

	cases := []struct {
		name   string
		cfg    *config.Config
		origin string
		want   int
	}{
		{"prod frontend", prod, "https://range.example.com", http.StatusOK},
		{"prod foreign", prod, "https://evil.example.com", http.StatusForbidden},
		{"no origin", prod, "", http.StatusOK},
		{"dev localhost", dev, "http://localhost:3000", http.StatusOK},
		{"dev remote", dev, "https://range.example.com", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			wsRouter(tc.cfg).ServeHTTP(w, upgradeRequest(tc.origin))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	assert.Contains(t, AllowedOrigins(&config.Config{Environment: "development"}), "http://localhost:5173")
	assert.Equal(t, []string{"https://range.example.com"},
		AllowedOrigins(&config.Config{Environment: "production", FrontendURL: "https://range.example.com"}))
}
