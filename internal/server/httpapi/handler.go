package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/meetpoint/internal/common"
)

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) registerUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.ExternalID, req.DisplayName)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "registered user", "id", user.ID, "display_name", user.DisplayName)
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *Server) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	user, err := s.users.FindByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) getUserByExternalID(c *gin.Context) {
	user, err := s.users.FindByExternalID(c.Request.Context(), c.Param("external_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) countUsers(c *gin.Context) {
	count, err := s.users.Count(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.String(http.StatusOK, strconv.FormatInt(count, 10))
}

func (s *Server) listUserNames(c *gin.Context) {
	names, err := s.users.DisplayNames(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.String(http.StatusOK, strings.Join(names, "\n"))
}

func (s *Server) createHandshake(c *gin.Context) {
	var req HandshakeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	handshake, err := s.handshakes.Record(c.Request.Context(),
		optional(req.ExternalID), req.DisplayName, optional(req.Location))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "recorded handshake", "id", handshake.ID, "user_id", handshake.UserID)
	c.JSON(http.StatusCreated, newHandshakeResponse(handshake))
}

func (s *Server) countHandshakes(c *gin.Context) {
	count, err := s.handshakes.Count(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.String(http.StatusOK, strconv.FormatInt(count, 10))
}

func (s *Server) countHandshakesForUser(c *gin.Context) {
	externalID := optional(c.Query("external_id"))
	displayName := c.Query("name")

	if externalID == nil && displayName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "external_id or name required"})
		return
	}

	user, err := s.handshakes.LookupUser(c.Request.Context(), externalID, displayName)
	if err != nil {
		s.respondError(c, err)
		return
	}

	count, err := s.handshakes.CountForUser(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.String(http.StatusOK, strconv.FormatInt(count, 10))
}

func (s *Server) createBackup(c *gin.Context) {
	key, err := s.backups.Run(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "uploaded database backup", "key", key)
	c.JSON(http.StatusCreated, BackupResponse{Key: key})
}

// respondError maps domain errors onto HTTP statuses. Uniqueness violations
// surface as conflicts with a distinct message per rule; everything
// unexpected collapses to a 500 without leaking internals.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrDuplicateExternalID):
		c.JSON(http.StatusConflict, ErrorResponse{Error: common.ErrDuplicateExternalID.Error()})
	case errors.Is(err, common.ErrDuplicateIdentityPair):
		c.JSON(http.StatusConflict, ErrorResponse{Error: common.ErrDuplicateIdentityPair.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no record found"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// optional maps an empty transport value to an absent one. Form and query
// encodings cannot distinguish omitted from empty, so empty means unset at
// this boundary.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
