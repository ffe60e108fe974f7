package server

import (
	"log"

	"photostudio-be/internal/bootstrap"
	"photostudio-be/internal/config"
	"photostudio-be/internal/metrics"
	"photostudio-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	metrics.Init()

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ErrorHandler: serverutils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())
	app.Use(metrics.HTTPMetrics())
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "up"}))
	})
	app.Get("/metrics", metrics.Handler())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)

	// The Midtrans webhook is public and lives under /transactions, so it
	// must be mounted before the authenticated transaction group.
	c.PaymentController.RegisterRoutes(api)
	c.TransactionController.RegisterRoutes(api)
	c.TransactionRequestController.RegisterRoutes(api)

	c.NotificationHandler.RegisterRoutes(api)
}
