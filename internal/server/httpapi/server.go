// Package httpapi exposes the registry and handshake services over HTTP.
// The surface is a small gin application guarded by an optional static
// token passed as a query parameter.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/meetpoint/internal/logging"
	"github.com/avoronov/meetpoint/internal/server/config"
	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/users"
)

// UserRegistry is the subset of the user identity registry used by the
// handlers. The interface is owned by the consumer; *users.Service
// satisfies it.
type UserRegistry interface {
	Register(ctx context.Context, externalID *string, displayName string) (*users.User, error)
	FindByID(ctx context.Context, id int64) (*users.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*users.User, error)
	Count(ctx context.Context) (int64, error)
	DisplayNames(ctx context.Context) ([]string, error)
}

// HandshakeLog is the subset of the handshake service used by the handlers.
type HandshakeLog interface {
	Record(ctx context.Context, externalID *string, displayName string, location *string) (*handshakes.Handshake, error)
	LookupUser(ctx context.Context, externalID *string, displayName string) (*users.User, error)
	Count(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID int64) (int64, error)
}

// BackupRunner uploads a database snapshot and returns the object key.
type BackupRunner interface {
	Run(ctx context.Context) (string, error)
}

type Server struct {
	address         string
	token           string
	shutdownTimeout time.Duration
	logger          logging.Logger
	users           UserRegistry
	handshakes      HandshakeLog
	backups         BackupRunner
}

func NewServer(cfg *config.Config, l logging.Logger, ur UserRegistry, hl HandshakeLog, br BackupRunner) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		token:           cfg.APIToken,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          l.With("module", "http_server"),
		users:           ur,
		handshakes:      hl,
		backups:         br,
	}
}

// Run serves the API until ctx is cancelled, then drains connections within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	if s.token == "" {
		s.logger.Warn(ctx, "No API token configured - requests will not be required to provide a token")
	}

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/healthz", s.health)

	authed := r.Group("/")
	authed.Use(s.requireToken())
	{
		authed.POST("/users", s.registerUser)
		authed.GET("/users/count", s.countUsers)
		authed.GET("/users/names", s.listUserNames)
		authed.GET("/users/:id", s.getUser)
		authed.GET("/users/by-external-id/:external_id", s.getUserByExternalID)

		authed.POST("/handshakes", s.createHandshake)
		authed.GET("/handshakes/count", s.countHandshakes)
		authed.GET("/handshakes/count/user", s.countHandshakesForUser)

		authed.POST("/backups", s.createBackup)
	}

	return r
}
