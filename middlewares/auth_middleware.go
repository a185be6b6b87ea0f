package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/utils"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
	ContextClaims = "claims"

	// AuthCookie holds the credential for browser clients.
	AuthCookie = "jwt"
)

// Authenticator verifies a raw credential.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.CustomClaims, error)
}

// AuthMiddleware accepts a bearer token or the jwt cookie.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(AuthCookie)
		}
		authenticate(c, auth, token)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func authenticate(c *gin.Context, auth Authenticator, token string) {
	if token == "" {
		utils.RespondServiceError(c, utils.Unauthenticated("Not authorized, no token"))
		c.Abort()
		return
	}

	claims, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		utils.RespondServiceError(c, err)
		c.Abort()
		return
	}
	if claims.UserID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, utils.Unauthenticated("Invalid user ID in token"))
		c.Abort()
		return
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
	c.Next()
}
