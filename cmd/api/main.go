package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexastore/storefront/internal/bootstrap"
	"github.com/nexastore/storefront/internal/catalog"
	"github.com/nexastore/storefront/internal/controller"
	"github.com/nexastore/storefront/internal/domain/checkout"
	"github.com/nexastore/storefront/internal/gateway"
	"github.com/nexastore/storefront/internal/ipdetect"
	"github.com/nexastore/storefront/internal/registry"
	"github.com/nexastore/storefront/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "storefront-api", "storefront")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Reference registry ---
	var refRegistry registry.ReferenceRegistry
	if app.Redis != nil {
		refRegistry = registry.NewRedis(app.Redis, app.Config.Registry.ReferenceTTL)
	} else {
		refRegistry = registry.NewMemory(app.Config.Registry.ReferenceTTL)
	}

	// --- Services ---
	paystack := gateway.NewPaystack(
		app.Config.Paystack.BaseURL,
		app.Config.Paystack.SecretKey,
		app.Config.Paystack.RequestTimeout,
		app.Logger,
	)
	initiationService := service.NewInitiationService(
		app.Config.Paystack,
		app.Config.Store.ReferencePrefix,
		paystack,
		checkout.NewGenerator(),
		refRegistry,
		app.Metrics,
		app.Logger,
	)
	detector := ipdetect.New(app.Config.Paystack.RequestTimeout)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		RedisClient:       app.Redis,
		Catalog:           catalog.New(),
		InitiationService: initiationService,
		Detector:          detector,
		Metrics:           app.Metrics,
		ServerConfig:      app.Config.Server,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
