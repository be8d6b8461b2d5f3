package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronov/meetpoint/internal/common"
)

const requestIDHeader = "X-Request-Id"

// requireToken rejects requests whose token query parameter does not match
// the configured static token. With no token configured, the guard is off.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.token == "" {
			c.Next()
			return
		}

		got := c.Query(common.APITokenQueryParam)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "missing token"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			s.logger.Warn(c.Request.Context(), "rejected request with invalid token", "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		c.Next()
	}
}

// requestID tags every request/response pair with an id for log correlation.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}
