package middlewares

import "github.com/gin-gonic/gin"

// WebSocketAuthMiddleware reads the credential from the token query
// parameter, since browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c)
		}
		authenticate(c, auth, token)
	}
}
