package notificationController

import (
	"errors"
	"fmt"
	"log"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services/notification"

	"github.com/gofiber/fiber/v2"
)

// AdminSendNotification sends a message to everyone, to a role, or to an
// explicit user list. The response reports how many rows were created
// and which recipients failed, so the caller can retry only those.
func AdminSendNotification(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedNotificationSend").(*struct {
		Message string `json:"message" validate:"required"`
		Type    string `json:"type" validate:"omitempty,oneof=SYSTEM ADMIN ENROLLMENT COMMENT"`
		Role    string `json:"role" validate:"omitempty,oneof=STUDENT TRAINER ADMIN"`
		UserIDs []uint `json:"userIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	typ := reqData.Type
	if typ == "" {
		typ = models.NotificationAdmin
	}

	var audience notification.Audience
	switch {
	case len(reqData.UserIDs) > 0:
		audience = notification.AudienceUsers(reqData.UserIDs...)
	case reqData.Role != "":
		audience = notification.AudienceRole(reqData.Role)
	default:
		audience = notification.AudienceAll()
	}

	created, failed, err := notification.Broadcast(database.Database.Db, audience, typ, reqData.Message)
	if err != nil {
		if errors.Is(err, notification.ErrBadType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification type!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notifications!", nil)
	}

	if len(failed) > 0 {
		log.Printf("Broadcast partially failed: %d of %d recipients not notified", len(failed), len(created)+len(failed))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		fmt.Sprintf("%d notifications sent!", len(created)), fiber.Map{
			"message":       reqData.Message,
			"notifications": created,
			"failed":        failed,
		})
}

// AdminGetNotifications lists recent notifications across all users for
// the moderation dashboard.
func AdminGetNotifications(c *fiber.Ctx) error {
	db := database.Database.Db

	var list []models.Notification
	if err := db.Order("created_at desc").Limit(100).Find(&list).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": list,
		"total":         len(list),
	})
}
