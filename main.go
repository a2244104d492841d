package main

import (
	"log"

	"lms/config"
	contentController "lms/controllers/content"
	courseController "lms/controllers/course"
	enrollmentController "lms/controllers/enrollment"
	reportController "lms/controllers/report"
	searchController "lms/controllers/search"
	submissionController "lms/controllers/submission"
	userControllers "lms/controllers/userControllers"
	"lms/database"
	"lms/middleware"
	"lms/routers/contentRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/enrollmentRoutes"
	"lms/routers/reportRoutes"
	"lms/routers/searchRoutes"
	"lms/routers/submissionRoutes"
	"lms/routers/userRoutes"
	"lms/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.Load()
	db := database.Connect(cfg)

	users := store.NewUserStore(db, cfg.BcryptCost)
	catalog := store.NewCatalogStore(db)
	content := store.NewContentStore(db)
	enrollments := store.NewEnrollmentStore(db)
	submissions := store.NewSubmissionStore(db)
	search := store.NewSearchStore(db)

	tokens := middleware.NewTokenService(cfg.JWTSecret, cfg.JWTTTLHours)
	sessions := session.New()
	auth := middleware.Authenticate(tokens, users, sessions)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(cfg.Production()),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Static("/uploads", cfg.UploadRoot)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	userRoutes.SetupUserRoutes(app, userControllers.New(cfg, users, tokens, sessions), auth)
	courseRoutes.SetupCourseRoutes(app, courseController.New(cfg, catalog), auth)
	contentRoutes.SetupContentRoutes(app, contentController.New(cfg, content), auth)
	enrollmentRoutes.SetupEnrollmentRoutes(app, enrollmentController.New(enrollments), auth)
	submissionRoutes.SetupSubmissionRoutes(app, submissionController.New(cfg, submissions), auth)
	searchRoutes.SetupSearchRoutes(app, searchController.New(search), auth)
	reportRoutes.SetupReportRoutes(app, reportController.New(users, catalog, enrollments), auth)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
