package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weatherlog/internal/api/http"
	"weatherlog/internal/cli"
	"weatherlog/internal/config"
	"weatherlog/internal/scheduler"
	"weatherlog/internal/store"
	"weatherlog/internal/weather"
	"weatherlog/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Println("Please set OPENWEATHER_API_KEY to a real OpenWeatherMap API key.")
			fmt.Println("Get a free key at https://openweathermap.org/api")
			os.Exit(1)
		}
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound weather api calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	source := providers.NewClient(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)

	weatherLog, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open weather log: %v", err)
	}
	defer weatherLog.Close()

	service := weather.NewService(source, weatherLog)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		runServer(cfg, service)
		return
	}

	app := cli.New(service, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("menu loop failed: %v", err)
	}
}

// runServer exposes the read-only HTTP API and, when cities are configured,
// the periodic tracker. Blocks until a termination signal.
func runServer(cfg *config.AppConfig, service *weather.Service) {
	tracker := scheduler.New(cfg.TrackCities, cfg.TrackInterval, service)
	if err := tracker.Start(); err != nil {
		log.Fatalf("failed to start tracker: %v", err)
	}
	defer tracker.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weatherlog",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherlog",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
