package enrollmentController

import (
	"errors"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// Enroll books a seat in a session for the authenticated learner.
func Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	created, err := enrollment.Enroll(database.Database.Db, uint(sessionID), userID)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrSessionNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
		case errors.Is(err, enrollment.ErrSessionNotBookable):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "This session's course is not open for enrollment!", nil)
		case errors.Is(err, enrollment.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this session!", nil)
		case errors.Is(err, enrollment.ErrSessionFull):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session is full!", nil)
		case created != nil:
			// Seat is booked; only the in-app notification failed.
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in session successfully!", created)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in session!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in session successfully!", created)
}

// Withdraw removes an enrollment. The enrolled learner, the course's
// trainer and admins are allowed.
func Withdraw(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	if err := enrollment.Withdraw(database.Database.Db, uint(enrollmentID), userID); err != nil {
		switch {
		case errors.Is(err, enrollment.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case errors.Is(err, enrollment.ErrForbidden):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot remove this enrollment!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to withdraw enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment withdrawn successfully!", nil)
}

// GetSessionEnrollments lists a session's enrollments joined with the
// learner summary. Trainer (owner) and admin only.
func GetSessionEnrollments(c *fiber.Ctx) error {
	actor := c.Locals("currentUser").(models.User)
	sessionID := c.Locals("sessionID").(int)

	db := database.Database.Db

	var session models.Session
	if err := db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if actor.Role != models.RoleAdmin {
		var course models.Course
		if err := db.First(&course, session.CourseID).Error; err != nil || course.TrainerID != actor.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot view this session's enrollments!", nil)
		}
	}

	list, err := enrollment.ListForSession(db, uint(sessionID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithLearner struct {
		models.Enrollment
		LearnerName  string `json:"learner_name"`
		LearnerEmail string `json:"learner_email"`
	}

	result := make([]EnrollmentWithLearner, len(list))
	for i, e := range list {
		var learner models.User
		db.Select("name, email").Where("id = ?", e.LearnerID).First(&learner)
		result[i] = EnrollmentWithLearner{
			Enrollment:   e,
			LearnerName:  learner.Name,
			LearnerEmail: learner.Email,
		}
	}

	remaining, _ := enrollment.RemainingCapacity(db, uint(sessionID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments":     result,
		"total":           len(result),
		"remaining_seats": remaining,
	})
}

// GetUserEnrollments lists the authenticated learner's enrollments
// joined with session and course summaries.
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	list, err := enrollment.ListForLearner(db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithSession struct {
		models.Enrollment
		SessionTitle string `json:"session_title"`
		CourseTitle  string `json:"course_title"`
		ScheduledAt  string `json:"scheduled_at"`
		MeetingLink  string `json:"meeting_link"`
	}

	result := make([]EnrollmentWithSession, len(list))
	for i, e := range list {
		var session models.Session
		db.Where("id = ?", e.SessionID).First(&session)
		var course models.Course
		db.Select("title").Where("id = ?", session.CourseID).First(&course)
		result[i] = EnrollmentWithSession{
			Enrollment:   e,
			SessionTitle: session.Title,
			CourseTitle:  course.Title,
			ScheduledAt:  session.ScheduledAt.Format("2006-01-02 15:04"),
			MeetingLink:  session.MeetingLink,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
