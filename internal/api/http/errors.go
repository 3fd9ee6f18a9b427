package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
)

const (
	msgInternal = "Internal server error"
	msgStorage  = "Unable to store image"
)

// WriteError maps err to its status code and writes {"message": ...}.
// 5xx responses carry a fixed message; the cause is logged instead.
func WriteError(c *gin.Context, log logrus.FieldLogger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Unexpected(msgInternal, err)
	}

	status := appErr.Kind.HTTPStatus()
	body := gin.H{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}

	if status >= http.StatusInternalServerError {
		body = gin.H{"message": msgInternal}
		if appErr.Kind == apperr.KindStorage {
			body["message"] = msgStorage
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"kind":       appErr.Kind.String(),
				"error":      err.Error(),
			}).Error("request failed")
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// BindJSON decodes the request body, turning decode failures and oversized
// bodies into validation errors.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large")
		}
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// EpochMillis renders t the way clients expect timestamps.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
