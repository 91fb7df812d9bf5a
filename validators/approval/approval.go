package approvalValidator

import (
	"strconv"
	"strings"

	"trainhub/middleware"
	"trainhub/models"

	"github.com/gofiber/fiber/v2"
)

// RequestID validates the :id path param and stashes it as an int.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestIDStr := strings.TrimSpace(c.Params("id"))
		if requestIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request ID is required!", nil)
		}

		requestID, err := strconv.Atoi(requestIDStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

// PendingFilter validates the optional ?subject_type= query param.
func PendingFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectType := strings.ToUpper(strings.TrimSpace(c.Query("subject_type")))
		if subjectType != "" && subjectType != models.SubjectCourse && subjectType != models.SubjectSession {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "subject_type must be COURSE or SESSION!", nil)
		}

		c.Locals("subjectTypeFilter", subjectType)
		return c.Next()
	}
}

// RejectRequest validates :id plus the mandatory rejection reason.
// The reason check runs here so no state is touched on a bad request.
func RejectRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestIDStr := strings.TrimSpace(c.Params("id"))
		requestID, err := strconv.Atoi(requestIDStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		reqData := new(struct {
			Notes string `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Notes) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"notes": "Rejection reason is required!",
			})
		}

		c.Locals("requestID", requestID)
		c.Locals("reviewNotes", reqData.Notes)
		return c.Next()
	}
}
