package handlers

import (
	"net/http"

	"scriblet/game"

	"github.com/gin-gonic/gin"
)

// Liveness answers the bare root path so load balancers and uptime
// probes get a cheap 200.
func Liveness(c *gin.Context) {
	c.String(http.StatusOK, "scriblet server is running")
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListRooms returns the public room directory for the lobby browser.
func ListRooms(hub *game.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.RoomSummaries())
	}
}
