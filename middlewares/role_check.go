package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/utils"
)

// Authorize lets the request through only for the listed roles. It must run
// after AuthMiddleware.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextRole)
		if !exists {
			utils.RespondServiceError(c, utils.Unauthenticated("Not authorized"))
			c.Abort()
			return
		}

		for _, r := range roles {
			if userRole == string(r) {
				c.Next()
				return
			}
		}
		utils.RespondServiceError(c, utils.Forbidden("Role %v is not allowed to access this resource", userRole))
		c.Abort()
	}
}
