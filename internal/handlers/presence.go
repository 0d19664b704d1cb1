package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wardpulse/realtime-gateway/internal/gateway"
)

// Status reports service health plus the online connection count, for the
// dashboard's header widget.
func Status(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "API is operational",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"onlineUsers": gw.Count(),
		})
	}
}

// Presence returns the full presence report grouped by role and department.
func Presence(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gw.PresenceReport())
	}
}

// PresenceByRole returns the online count for one role.
func PresenceByRole(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Param("role")
		c.JSON(http.StatusOK, gin.H{
			"role":   role,
			"online": gw.CountByRole(role),
		})
	}
}

// PresenceByDepartment returns the online count for one department.
func PresenceByDepartment(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.Param("department")
		c.JSON(http.StatusOK, gin.H{
			"department": department,
			"online":     gw.CountByDepartment(department),
		})
	}
}
