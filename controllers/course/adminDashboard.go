package courseController

import (
	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats gets dashboard statistics
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses, publishedCourses, totalSessions, totalEnrollments, pendingApprovals, unreadNotifications int64

	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	db.Model(&models.Session{}).Where("is_deleted = ?", false).Count(&totalSessions)
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)
	db.Model(&models.ApprovalRequest{}).Where("status = ?", models.ApprovalPending).Count(&pendingApprovals)
	db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unreadNotifications)

	// Recent enrollments for the activity feed
	type RecentEnrollment struct {
		LearnerName  string `json:"learner_name"`
		SessionTitle string `json:"session_title"`
		EnrolledAt   string `json:"enrolled_at"`
	}

	var recentEnrollments []models.Enrollment
	db.Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var learner models.User
		var session models.Session
		db.Select("name").Where("id = ?", e.LearnerID).First(&learner)
		db.Select("title").Where("id = ?", e.SessionID).First(&session)
		recent[i] = RecentEnrollment{
			LearnerName:  learner.Name,
			SessionTitle: session.Title,
			EnrolledAt:   e.EnrolledAt.Format("2006-01-02 15:04"),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":        totalCourses,
		"published_courses":    publishedCourses,
		"total_sessions":       totalSessions,
		"total_enrollments":    totalEnrollments,
		"pending_approvals":    pendingApprovals,
		"unread_notifications": unreadNotifications,
		"recent_enrollments":   recent,
	})
}
