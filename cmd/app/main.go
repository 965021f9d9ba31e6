package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	_ "dispatch/docs"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/postgres/pilotrepo"
	"dispatch/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//	@title			Dispatch Service API
//	@version		1.0
//	@description	Order fulfillment and delivery dispatch for a construction materials marketplace.
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	configs := cmd.LoadConfig()

	appLogger := logger.New(configs.LogLevel, configs.LogFormat)
	defer appLogger.Sync()

	gormDB := mustOpenDatabase(configs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := cmd.NewCompositionRoot(ctx, configs, gormDB, appLogger)
	if err != nil {
		appLogger.Fatal("composition root failed", zap.Error(err))
	}
	defer root.Close()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		appLogger.Fatal("background jobs failed to start", zap.Error(err))
	}
	defer jobManager.StopAll()

	consumer := root.CreatePaymentConsumer()
	defer consumer.Close()
	go consumer.Run(ctx)

	e := buildWebServer(&root, configs, appLogger)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if err := e.Start(address); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown failed", zap.Error(err))
	}
}

func buildWebServer(root *cmd.CompositionRoot, configs cmd.Config, appLogger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadapter.NewRequestValidator()

	if contract, err := httpadapter.NewOpenAPIValidator(configs.OpenAPISpecPath); err != nil {
		appLogger.Warn("api contract validation disabled", zap.Error(err))
	} else {
		e.Use(contract)
	}

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TimelineEntryDTO{},
		&pilotrepo.PilotDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	return gormDB
}
