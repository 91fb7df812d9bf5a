package notificationRoutes

import (
	controllers "trainhub/controllers/notification"
	"trainhub/middleware"
	"trainhub/models"
	validators "trainhub/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up recipient and admin notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("/", controllers.GetNotifications)
	notificationGroup.Patch("/:id/read", validators.NotificationID(), controllers.MarkNotificationRead)
	notificationGroup.Delete("/:id", validators.NotificationID(), controllers.DeleteNotification)

	adminGroup := app.Group("/admin/notifications", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	adminGroup.Get("/", controllers.AdminGetNotifications)
	adminGroup.Post("/send", validators.AdminSend(), controllers.AdminSendNotification)
}
