// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/http"
	"github.com/guttosm/kit-service/internal/messaging"
)

// App is the wired service: its router plus the resources to release on shutdown.
type App struct {
	Router *gin.Engine

	storage   *StorageComponents
	publisher messaging.Publisher
	router    *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	storage, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	publisher := InitializePublisher(cfg.Kafka)
	services := InitializeServices(storage, publisher, cfg.Planning)
	routerComponents := InitializeRouter(cfg, storage, services)

	return &App{
		Router:    http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		storage:   storage,
		publisher: publisher,
		router:    routerComponents,
	}, nil
}

// Close flushes the event publisher and disconnects storage.
func (a *App) Close(ctx context.Context) error {
	a.router.Stop()

	var errs []error
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.storage.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
		return err
	}
	return nil
}
