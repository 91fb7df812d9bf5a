package courseController

import (
	"errors"
	"log"
	"time"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services/approval"
	"trainhub/services/enrollment"
	"trainhub/utils"

	"github.com/gofiber/fiber/v2"
)

// TrainerCreateCourse creates a new draft course owned by the trainer.
// The course is not visible to students until submitted and approved.
func TrainerCreateCourse(c *fiber.Ctx) error {
	trainer := c.Locals("currentUser").(models.User)

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title" validate:"required"`
		Description  string `json:"description" validate:"required"`
		Category     string `json:"category"`
		MaxStudents  int    `json:"max_students" validate:"omitempty,min=1"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	maxStudents := reqData.MaxStudents
	if maxStudents == 0 {
		maxStudents = 10
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		TrainerID:    trainer.ID,
		Category:     reqData.Category,
		MaxStudents:  maxStudents,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       models.CourseDraft,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// TrainerSubmitCourse opens an approval request for the trainer's own
// draft or previously rejected course.
func TrainerSubmitCourse(c *fiber.Ctx) error {
	trainer := c.Locals("currentUser").(models.User)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND trainer_id = ? AND is_deleted = ?", courseID, trainer.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not owned by you!", nil)
	}

	request, err := approval.Submit(db, models.SubjectCourse, course.ID, trainer.ID)
	if err != nil {
		if errors.Is(err, approval.ErrDuplicatePending) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already awaiting review!", nil)
		}
		log.Printf("Error submitting course %d for review: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course for review!", nil)
	}

	course.Status = models.CourseInReview
	db.Save(&course)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course submitted for review!", request)
}

// TrainerScheduleSession schedules a live session for an approved course.
func TrainerScheduleSession(c *fiber.Ctx) error {
	trainer := c.Locals("currentUser").(models.User)
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedSession").(*struct {
		Title       string `json:"title"`
		ScheduledAt string `json:"scheduled_at" validate:"required"`
		DurationMin int    `json:"duration_min" validate:"omitempty,min=15"`
		MaxStudents int    `json:"max_students" validate:"omitempty,min=1"`
		MeetingLink string `json:"meeting_link"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND trainer_id = ? AND is_deleted = ?", courseID, trainer.ID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not owned by you!", nil)
	}

	// Only approved courses are schedulable.
	latest, err := approval.LatestForSubject(db, models.SubjectCourse, course.ID)
	if err != nil || latest.Status != models.ApprovalApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course must be approved before scheduling sessions!", nil)
	}

	scheduledAt := c.Locals("scheduledAt").(time.Time)

	maxStudents := reqData.MaxStudents
	if maxStudents == 0 {
		maxStudents = course.MaxStudents
	}

	meetingLink := reqData.MeetingLink
	if meetingLink == "" {
		meetingLink = utils.GenerateMeetingLink()
	}

	session := models.Session{
		CourseID:    course.ID,
		Title:       reqData.Title,
		ScheduledAt: scheduledAt,
		DurationMin: reqData.DurationMin,
		MaxStudents: maxStudents,
		MeetingLink: meetingLink,
	}
	if session.DurationMin == 0 {
		session.DurationMin = 60
	}

	if err := db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session scheduled successfully!", session)
}

// GetAllCourses lists publicly visible (approved) courses.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ? AND is_published = ?", false, true).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetCourseDetails returns an approved course with its upcoming sessions
// and per-session remaining capacity.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sessions []models.Session
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("scheduled_at asc").Find(&sessions)

	type SessionWithSeats struct {
		models.Session
		RemainingSeats int `json:"remaining_seats"`
	}

	result := make([]SessionWithSeats, len(sessions))
	for i, s := range sessions {
		remaining, err := enrollment.RemainingCapacity(db, s.ID)
		if err != nil {
			remaining = 0
		}
		result[i] = SessionWithSeats{Session: s, RemainingSeats: remaining}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"sessions": result,
	})
}

// TrainerGetCourses lists the trainer's own courses in every status.
func TrainerGetCourses(c *fiber.Ctx) error {
	trainer := c.Locals("currentUser").(models.User)

	var courses []models.Course
	if err := database.Database.Db.Where("trainer_id = ? AND is_deleted = ?", trainer.ID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}
