// Package server runs the operator API: it opens the store, bootstraps the
// allow-listed admins, serves gRPC and shuts down gracefully on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cvmaster/internal/allowlist"
	"github.com/dmitrijs2005/cvmaster/internal/config"
	"github.com/dmitrijs2005/cvmaster/internal/database"
	"github.com/dmitrijs2005/cvmaster/internal/logging"
	"github.com/dmitrijs2005/cvmaster/internal/services"
	"golang.org/x/time/rate"

	gs "github.com/dmitrijs2005/cvmaster/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	admins, err := allowlist.Load(c.AdminsFile)
	if err != nil {
		return nil, fmt.Errorf("admins file error: %w", err)
	}

	db, m, err := database.InitDatabase(ctx, c.StoreDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	directory := services.NewAccountDirectory(db, m, admins)
	if err := services.NewSessionHolder(db, m, directory).Init(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap error: %w", err)
	}

	licenses := services.NewLicenseRegistry(db, m)
	tokens := services.NewTokenService(db, m, c.SecretKey, c.AccessTokenValidityDuration)
	queries := services.NewAdminQueries(licenses, directory)
	limiter := rate.NewLimiter(rate.Limit(c.LoginRatePerSecond), c.LoginBurst)

	s := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, tokens, licenses, queries, c.SecretKey, limiter)

	logger.Info(ctx, "Store ready", "driver", c.StoreDriver, "admins", len(admins.Admins()))
	return &App{config: c, logger: logger, db: db, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
