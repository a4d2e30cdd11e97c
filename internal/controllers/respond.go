package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"goodness_grid/internal/services"
)

// respondServiceError translates service-layer sentinel errors into HTTP
// responses. Anything unrecognized is a persistence failure: it gets
// logged and surfaced as a generic 500 so internals never reach callers.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// authedUserID pulls the authenticated user's id out of the JWT claims
// stored by the auth middleware.
func authedUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}

// pathID parses a numeric :id path parameter. Returns 0 and writes a 400
// response when the parameter is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(id), true
}
