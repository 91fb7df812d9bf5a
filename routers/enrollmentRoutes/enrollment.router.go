package enrollmentRoutes

import (
	controllers "trainhub/controllers/enrollment"
	"trainhub/middleware"
	validators "trainhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up learner enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments", middleware.JWTMiddleware)

	enrollGroup.Post("/", validators.Enroll(), controllers.Enroll)
	enrollGroup.Delete("/:id", validators.EnrollmentID(), controllers.Withdraw)

	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/enrollments", controllers.GetUserEnrollments)
}
