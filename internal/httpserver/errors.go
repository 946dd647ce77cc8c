package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"graetzlmap/internal/domain"
	"graetzlmap/internal/geoquery"
)

const traceIDKey = "trace_id"

// writeError maps domain errors to statuses. Unexpected errors are logged
// with the request's trace id and answered with a generic message.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalid), errors.Is(err, geoquery.ErrBadCoordinate):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrReadOnly):
		status = http.StatusMethodNotAllowed
	}
	if status == http.StatusInternalServerError {
		logger.Printf("%s %s trace_id=%s error=%v", c.Request.Method, c.Request.URL.Path, c.GetString(traceIDKey), err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
