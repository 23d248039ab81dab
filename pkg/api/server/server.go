// Package server assembles the fiber application: middleware stack, error
// handling and route registration.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"stock_potential/pkg/api/calculator"
	apiconfig "stock_potential/pkg/api/config"
	"stock_potential/pkg/core/config"
	"stock_potential/pkg/core/logging"
)

const version = "1.0.0"

// New builds the app. Nothing is started; call Listen on the result.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "stock-potential",
		AppName:       "Stock Potential v" + version,
		ReadTimeout:   10 * time.Second,
		WriteTimeout:  10 * time.Second,
		BodyLimit:     1 * 1024 * 1024,
		ErrorHandler:  ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Environment != "test" {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(calculator.ErrorResponse{
				Error: "Rate limit exceeded. Please try again later.",
				Code:  fiber.StatusTooManyRequests,
			})
		},
	}))

	started := time.Now()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "stock-potential",
			"version": version,
			"uptime":  time.Since(started).String(),
		})
	})

	app.Get("/api/config", apiconfig.NewHandler(cfg).HandleConfig)
	calculator.NewHandler(cfg).Register(app)

	return app
}

// ErrorHandler renders every error as an ErrorResponse. Client errors come
// in as *fiber.Error; anything else is a 500 and gets logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		logging.L().Errorw("[API] request failed",
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
	}

	return c.Status(code).JSON(calculator.ErrorResponse{
		Error:   statusText(code),
		Message: err.Error(),
		Code:    code,
	})
}

func statusText(code int) string {
	if msg := fiber.NewError(code).Message; msg != "" {
		return msg
	}
	return "Request failed"
}
