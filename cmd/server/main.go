package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"busline/internal/app"
	"busline/internal/config"
	"busline/internal/handler"
	internalRedis "busline/internal/redis"
	"busline/internal/registry"
	"busline/internal/service"
	"busline/internal/snapshot"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before datastores so we can instrument them).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Initialize the snapshot database only when snapshots are enabled; the
	// core keeps all state in memory.
	var db *sql.DB
	if cfg.Snapshot.Enabled {
		db, err = app.NewDatabase(ctx, cfg.Snapshot.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to snapshot database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL (snapshots enabled)")
	}

	// Wire dependencies.
	server, err := wireServer(ctx, db, redisClient, nrApp, cfg)
	if err != nil {
		log.Fatalf("failed to wire server: %v", err)
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(ctx context.Context, db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Initialize Redis stores.
	fleetCache := internalRedis.NewFleetCache(redisClient)

	// Initialize the registry and ledger.
	reg := registry.New()
	if cfg.Seed.Fleet {
		if err := app.SeedFleet(reg); err != nil {
			return nil, err
		}
	}

	notificationService := service.NewNotificationService()
	bookingService := service.NewBookingService(reg, notificationService)
	ticketService := service.NewTicketService(reg, bookingService)

	// Initialize handlers.
	busHandler := handler.NewBusHandler(reg, fleetCache, notificationService)
	bookingHandler := handler.NewBookingHandler(bookingService, ticketService, fleetCache)

	var snapshotHandler *handler.SnapshotHandler
	if db != nil {
		store := snapshot.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		snapshotHandler = handler.NewSnapshotHandler(store, reg, bookingService)
	}

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		BusHandler:      busHandler,
		BookingHandler:  bookingHandler,
		SnapshotHandler: snapshotHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
