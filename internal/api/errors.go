package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"event_management/internal/service" // Service error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a service error onto an HTTP status
func statusFor(err error) int {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists), errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Unexpected errors are logged
// and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled error")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	body := gin.H{"error": err.Error()}
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		body["fields"] = vErr.FieldErrors
	}
	c.JSON(status, body)
}

// respondBindError rejects a request whose body failed to bind
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// idParam reads a positive numeric path parameter, answering 400 when it is malformed
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}
