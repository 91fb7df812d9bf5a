package enrollmentValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// Enroll validates the enrollment body ({sessionId}). The learner is
// always the authenticated user; there is no ambient identity here.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionID int `json:"sessionId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.SessionID <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"sessionId": "Session ID must be a positive integer!",
			})
		}

		c.Locals("sessionID", reqData.SessionID)
		return c.Next()
	}
}

// EnrollmentID validates the :id path param and stashes it as an int.
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentIDStr := strings.TrimSpace(c.Params("id"))
		if enrollmentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		enrollmentID, err := strconv.Atoi(enrollmentIDStr)
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// SessionID validates the :id path param for session-scoped listings.
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionIDStr := strings.TrimSpace(c.Params("id"))
		if sessionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session ID is required!", nil)
		}

		sessionID, err := strconv.Atoi(sessionIDStr)
		if err != nil || sessionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Session ID!", nil)
		}

		c.Locals("sessionID", sessionID)
		return c.Next()
	}
}
