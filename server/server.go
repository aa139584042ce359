package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// Server builds a fiber app that serves the output directory: the
// assembled activities.json plus the cached raw provider responses
// the website's other tabs read.
func Server(dir string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(etag.New())
	app.Use(compress.New())
	app.Use(cache.New(cache.Config{
		Expiration: 5 * time.Minute,
	}))

	app.Static("/", dir)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	return app
}
