package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondServiceError maps an error returned by a service to its HTTP status.
// Unknown errors are logged and hidden behind a generic message.
func RespondServiceError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		ErrorLogger.WithFields(map[string]interface{}{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Errorf("unexpected error: %v", err)
		RespondJSON(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	code := http.StatusInternalServerError
	switch appErr.Kind {
	case KindNotFound:
		code = http.StatusNotFound
	case KindInvalid:
		code = http.StatusBadRequest
	case KindForbidden:
		code = http.StatusForbidden
	case KindUnauthenticated:
		code = http.StatusUnauthorized
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: appErr.Message,
		Data:    appErr.Details,
	})
}
