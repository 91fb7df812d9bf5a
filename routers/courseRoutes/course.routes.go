package courseRoutes

import (
	controllers "trainhub/controllers/course"
	enrollmentControllers "trainhub/controllers/enrollment"
	"trainhub/middleware"
	"trainhub/models"
	validators "trainhub/validators/course"
	enrollmentValidators "trainhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up public and trainer-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	// Public catalog (approved courses only)
	courseGroup := app.Group("/course")
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Trainer-authored content
	trainerGroup := app.Group("/trainer/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer))
	trainerGroup.Post("/create", validators.CreateCourse(), controllers.TrainerCreateCourse)
	trainerGroup.Get("/list", controllers.TrainerGetCourses)
	trainerGroup.Post("/:id/submit", validators.CourseID(), controllers.TrainerSubmitCourse)
	trainerGroup.Post("/:id/session", validators.CourseID(), validators.ScheduleSession(), controllers.TrainerScheduleSession)

	// Session enrollments (trainer of the course, or admin)
	sessionGroup := app.Group("/session", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTrainer, models.RoleAdmin))
	sessionGroup.Get("/:id/enrollments", enrollmentValidators.SessionID(), enrollmentControllers.GetSessionEnrollments)
}
