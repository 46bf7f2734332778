// Package health exposes a small HTTP surface for uptime monitors.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"signalmentor/internal/status"
	"signalmentor/internal/version"
)

// Start serves the health endpoints on addr. It blocks; run it in a
// goroutine.
func Start(addr string, st *status.Status) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running!")
	})

	r.GET("/api/status", func(c *gin.Context) {
		connected, username, since := st.Snapshot()
		resp := gin.H{
			"app":       version.AppName,
			"version":   version.AppVersion,
			"connected": connected,
			"uptime":    version.Uptime().Round(time.Second).String(),
		}
		if connected {
			resp["botUsername"] = username
			resp["connectedSince"] = since.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, resp)
	})

	return r.Run(addr)
}
