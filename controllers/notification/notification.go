package notificationController

import (
	"errors"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/services/notification"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications lists the authenticated user's notifications newest
// first. ?filter=all|unread|<type> narrows the result.
func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filter := c.Query("filter", "all")

	db := database.Database.Db

	list, err := notification.ListForRecipient(db, userID, filter)
	if err != nil {
		if errors.Is(err, notification.ErrBadType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid filter!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	unread, _ := notification.UnreadCount(db, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": list,
		"total":         len(list),
		"unread":        unread,
	})
}

// MarkNotificationRead marks the user's own notification as read.
// Re-marking an already-read notification succeeds unchanged.
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	n, err := notification.MarkRead(database.Database.Db, uint(notificationID), userID)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
		case errors.Is(err, notification.ErrForbidden):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This notification belongs to another user!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification as read!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", n)
}

// DeleteNotification deletes the user's own notification. A missing id
// is a success so client retries never error.
func DeleteNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	if err := notification.Delete(database.Database.Db, uint(notificationID), userID); err != nil {
		if errors.Is(err, notification.ErrForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This notification belongs to another user!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted!", nil)
}
