package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/WunderSocial/wunder-id/pkg/auth"
	"github.com/WunderSocial/wunder-id/pkg/errx"
	"github.com/WunderSocial/wunder-id/pkg/logx"
)

func main() {
	container, err := NewContainer(context.Background())
	if err != nil {
		logx.Fatalf("failed to build container: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "wunder-id",
		BodyLimit:    container.Config.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: container.Config.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logger.New())

	registerRoutes(app, container)

	addr := ":" + container.Config.Server.Port
	logx.Infof("listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		logx.Fatalf("server stopped: %v", err)
	}
}

func registerRoutes(app *fiber.App, c *Container) {
	app.Get("/health", handleHealth)

	api := app.Group("/api/v1", auth.Middleware(c.Auth))
	api.Post("/id/extract", handleExtract(c))
}

// errorHandler maps typed errors onto their wire shape; anything else
// becomes an opaque internal error.
func errorHandler(c *fiber.Ctx, err error) error {
	var e *errx.Error
	if errx.As(err, &e) {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	var fe *fiber.Error
	if errx.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	logx.WithFields(logx.Fields{"error": err.Error(), "path": c.Path()}).
		Error("unhandled error")
	internal := errx.New("internal server error", errx.TypeInternal)
	return c.Status(internal.HTTPStatus).JSON(internal.ToHTTPResponse())
}
