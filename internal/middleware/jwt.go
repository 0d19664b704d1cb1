package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardpulse/realtime-gateway/internal/auth"
)

// IdentityKey is where RequireAuth stores the resolved identity in the gin
// context.
const IdentityKey = "identity"

// RequireAuth guards HTTP endpoints with the same credential check used for
// websocket handshakes: a valid bearer token referencing an active account.
func RequireAuth(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request)

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}
