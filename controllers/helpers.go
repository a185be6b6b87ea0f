package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/middlewares"
	"github.com/yeremiapane/food-ordering-app/models"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

// actorFrom reads the caller set by AuthMiddleware.
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID: c.GetUint(middlewares.ContextUserID),
		Role:   models.Role(c.GetString(middlewares.ContextRole)),
	}
}

// paramID parses a positive numeric path parameter. On failure it has
// already written the response.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondServiceError(c, utils.Invalid("Invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional numeric query parameter; empty means 0.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondServiceError(c, utils.Invalid("Invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

func bindBody(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// uploadedFiles returns the files sent under field, or nil for non-multipart
// requests.
func uploadedFiles(c *gin.Context, field string) []*multipart.FileHeader {
	if !isMultipart(c) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
