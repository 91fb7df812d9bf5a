package notificationValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// NotificationID validates the :id path param and stashes it as an int.
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		notificationIDStr := strings.TrimSpace(c.Params("id"))
		if notificationIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Notification ID is required!", nil)
		}

		notificationID, err := strconv.Atoi(notificationIDStr)
		if err != nil || notificationID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}

		c.Locals("notificationID", notificationID)
		return c.Next()
	}
}

// AdminSend validates the broadcast body. Role and userIds are mutually
// exclusive; with neither set the message goes to everyone.
func AdminSend() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message" validate:"required"`
			Type    string `json:"type" validate:"omitempty,oneof=SYSTEM ADMIN ENROLLMENT COMMENT"`
			Role    string `json:"role" validate:"omitempty,oneof=STUDENT TRAINER ADMIN"`
			UserIDs []uint `json:"userIds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Role != "" && len(reqData.UserIDs) > 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Provide either role or userIds, not both!",
			})
		}

		c.Locals("validatedNotificationSend", reqData)
		return c.Next()
	}
}
