package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/cache"
	"github.com/umalmyha/contacts/internal/config"
	"github.com/umalmyha/contacts/internal/infra"
	"github.com/umalmyha/contacts/internal/repository"
	"github.com/umalmyha/contacts/internal/service"
)

const defaultShutdownTimeout = 10 * time.Second
const defaultConnectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	contactRepo, err := contactRepository(connectCtx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	redisClient, err := infra.Redis(connectCtx, cfg.RedisCfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer redisClient.Close()

	contactCache := cache.NewRedisContactCache(redisClient)
	contactSvc := service.NewContactService(contactRepo, contactCache)

	app, err := infra.Router(contactSvc)
	if err != nil {
		logrus.Fatal(err)
	}

	start(app, cfg.ServerCfg.Port)
}

func contactRepository(ctx context.Context, cfg config.Config) (repository.ContactRepository, error) {
	switch cfg.ServerCfg.StorageDriver {
	case config.StorageDriverMongo:
		client, err := infra.Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoContactRepository(client, cfg.MongoCfg.Database), nil
	case config.StorageDriverPostgres:
		pool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresContactRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.ServerCfg.StorageDriver)
	}
}

func start(app *echo.Echo, port int) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
