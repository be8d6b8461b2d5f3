// Package server initializes and runs the meetpoint server: it opens the
// database, wires repositories and services, and either serves the HTTP API
// or performs a one-shot legacy import.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avoronov/meetpoint/internal/logging"
	"github.com/avoronov/meetpoint/internal/server/backup"
	"github.com/avoronov/meetpoint/internal/server/config"
	"github.com/avoronov/meetpoint/internal/server/db"
	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/httpapi"
	"github.com/avoronov/meetpoint/internal/server/importer"
	"github.com/avoronov/meetpoint/internal/server/users"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	manager          db.RepositoryManager
	userService      *users.Service
	handshakeService *handshakes.Service
	backupService    *backup.Service
}

func NewApp(c *config.Config) (*App, error) {

	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	m, err := db.NewRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(m.Users())
	hs := handshakes.NewService(m.Handshakes(), us)
	bs := backup.NewService(c)

	return &App{
		config:           c,
		logger:           logger,
		manager:          m,
		userService:      us,
		handshakeService: hs,
		backupService:    bs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config, app.logger, app.userService, app.handshakeService, app.backupService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.manager.Close(); err != nil {
			app.logger.Error(ctx, "error closing database", "error", err.Error())
		}
	}()

	// Import mode: seed from the legacy file and exit without serving.
	if app.config.ImportFile != "" {
		imp := importer.New(app.handshakeService, app.logger)
		if err := imp.Run(ctx, app.config.ImportFile); err != nil {
			app.logger.Error(ctx, err.Error())
		}
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
