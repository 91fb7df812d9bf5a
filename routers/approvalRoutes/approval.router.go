package approvalRoutes

import (
	controllers "trainhub/controllers/approval"
	courseControllers "trainhub/controllers/course"
	"trainhub/middleware"
	"trainhub/models"
	validators "trainhub/validators/approval"

	"github.com/gofiber/fiber/v2"
)

// SetupApprovalRoutes sets up the admin moderation routes
func SetupApprovalRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/approvals/pending", validators.PendingFilter(), controllers.AdminListPendingApprovals)
	adminGroup.Post("/approvals/:id/approve", validators.RequestID(), controllers.AdminApproveRequest)
	adminGroup.Post("/approvals/:id/reject", validators.RejectRequest(), controllers.AdminRejectRequest)

	adminGroup.Get("/dashboard/stats", courseControllers.AdminDashboardStats)
}
