package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lastmile/cmd"
	"lastmile/internal/adapters/out/events"
	"lastmile/internal/adapters/out/postgres/batchrepo"
	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/metrics"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	grouping, assigning, err := cmd.LoadDispatchSettings(configs.SettingsPath)
	if err != nil {
		log.Fatalf("Error loading dispatch settings: %v", err)
	}

	gormDB := mustGormOpen(configs)
	mustAutoMigrate(gormDB)

	publisher := newPublisher(configs)
	if publisher != nil {
		defer publisher.Close()
	}

	metrics.RegisterDefault()

	app, err := cmd.NewCompositionRoot(configs, gormDB, grouping, assigning, publisher, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	return gormDB
}

func mustAutoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}, &batchrepo.BatchDTO{}); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}
}

func newPublisher(configs cmd.Config) *events.RedisPublisher {
	if configs.RedisURL == "" {
		return nil
	}

	rdb, err := events.NewRedisClient(configs.RedisURL)
	if err != nil {
		log.Fatalf("Error creating redis client: %v", err)
	}

	publisher, err := events.NewRedisPublisher(rdb, configs.RedisChannelPrefix)
	if err != nil {
		log.Fatalf("Error creating publisher: %v", err)
	}
	return publisher
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
