package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/auth"
	"github.com/wardpulse/realtime-gateway/internal/gateway"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// ServeWS authenticates the handshake and hands the connection to the
// gateway. Authentication happens before the upgrade so a rejected client
// never holds any room state; the refusal carries the reason string.
func ServeWS(gw *gateway.Gateway, authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request)

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.WithFields(log.Fields{"remote": c.ClientIP(), "error": err}).Info("connection refused")
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithField("error", err).Warn("failed to upgrade connection")
			return
		}

		client := gw.Register(identity, conn)
		gw.Serve(client)
	}
}
