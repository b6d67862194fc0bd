package api

import (
	"fintrack/docs"
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	txHandler *handlers.TransactionHandler,
	jwtManager *auth.JWTManager,
	users middleware.UserResolver,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger document via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	protect := middleware.AuthMiddleware(jwtManager, users, appLogger)

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", protect, authHandler.Me)

	// Category routes
	categories := app.Group("/categories", protect)
	categories.Post("", categoryHandler.Create)
	categories.Get("", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Transaction routes
	transactions := app.Group("/transactions", protect)
	transactions.Get("/stats", txHandler.Stats)
	transactions.Get("", txHandler.List)
	transactions.Post("", txHandler.Create)
	transactions.Delete("/:id", txHandler.Delete)

	return app
}
