package main

import (
	"log"

	"trainhub/config"
	"trainhub/database"
	approvalRoutes "trainhub/routers/approvalRoutes"
	authRoutes "trainhub/routers/authRoutes"
	courseRoutes "trainhub/routers/courseRoutes"
	enrollmentRoutes "trainhub/routers/enrollmentRoutes"
	notificationRoutes "trainhub/routers/notificationRoutes"
	"trainhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	approvalRoutes.SetupApprovalRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
