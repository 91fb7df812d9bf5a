package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"trainhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseID validates the :id path param and stashes it as an int.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required"`
			Description  string `json:"description" validate:"required"`
			Category     string `json:"category"`
			MaxStudents  int    `json:"max_students" validate:"omitempty,min=1"`
			ThumbnailURL string `json:"thumbnail_url"`
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

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ScheduleSession validates the session payload and parses scheduled_at;
// the parsed time is stashed separately so the handler doesn't re-parse.
func ScheduleSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			ScheduledAt string `json:"scheduled_at" validate:"required"`
			DurationMin int    `json:"duration_min" validate:"omitempty,min=15"`
			MaxStudents int    `json:"max_students" validate:"omitempty,min=1"`
			MeetingLink string `json:"meeting_link"`
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

		scheduledAt, err := time.Parse(time.RFC3339, reqData.ScheduledAt)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"scheduled_at": "Must be an RFC3339 timestamp!",
			})
		}
		if scheduledAt.Before(time.Now()) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"scheduled_at": "Must be in the future!",
			})
		}

		c.Locals("validatedSession", reqData)
		c.Locals("scheduledAt", scheduledAt)
		return c.Next()
	}
}
