// Package main is the entry point for the kit-service application.
//
// @title           Kit Service API
// @version         1.0.0
// @description     Kit inventory, client assignments and procurement planning.
//
//	Assigning kits decrements stock, possibly below zero; the negative part is the backlog still to be made.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/kit-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Operator token issued by the identity provider, as "Bearer <token>".
//
// @tag.name        Kits
// @tag.description Kit catalog operations
//
// @tag.name        Inventory
// @tag.description Raw material inventory
//
// @tag.name        Assignments
// @tag.description Kit assignments to clients and their lifecycle
//
// @tag.name        Planning
// @tag.description Procurement planning
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/kit-service/config"
	_ "github.com/guttosm/kit-service/docs" // swagger docs
	"github.com/guttosm/kit-service/internal/app"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	server := app.NewServer(application.Router, cfg.Server)
	runErr := server.Run(ctx)
	stop()

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	_ = application.Close(closeCtx)
	cancel()

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
