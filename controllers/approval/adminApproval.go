package approvalController

import (
	"errors"
	"log"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services/approval"
	"trainhub/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminListPendingApprovals returns the moderation queue oldest first,
// joined with a short subject and submitter summary.
func AdminListPendingApprovals(c *fiber.Ctx) error {
	subjectType := c.Locals("subjectTypeFilter").(string)

	db := database.Database.Db

	requests, err := approval.ListPending(db, subjectType)
	if err != nil {
		if errors.Is(err, approval.ErrBadSubjectType) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject type filter!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending approvals!", nil)
	}

	type RequestWithDetails struct {
		models.ApprovalRequest
		SubmitterName  string `json:"submitter_name"`
		SubmitterEmail string `json:"submitter_email"`
		SubjectTitle   string `json:"subject_title"`
	}

	result := make([]RequestWithDetails, len(requests))
	for i, r := range requests {
		var submitter models.User
		db.Select("name, email").Where("id = ?", r.SubmitterID).First(&submitter)

		title := ""
		switch r.SubjectType {
		case models.SubjectCourse:
			var course models.Course
			if err := db.Select("title").Where("id = ?", r.SubjectID).First(&course).Error; err == nil {
				title = course.Title
			}
		case models.SubjectSession:
			var session models.Session
			if err := db.Select("title").Where("id = ?", r.SubjectID).First(&session).Error; err == nil {
				title = session.Title
			}
		}

		result[i] = RequestWithDetails{
			ApprovalRequest: r,
			SubmitterName:   submitter.Name,
			SubmitterEmail:  submitter.Email,
			SubjectTitle:    title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending approvals fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}

// AdminApproveRequest resolves a pending request as approved.
func AdminApproveRequest(c *fiber.Ctx) error {
	admin := c.Locals("currentUser").(models.User)
	requestID := c.Locals("requestID").(int)

	db := database.Database.Db

	request, err := approval.Approve(db, uint(requestID), admin.ID)
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Approval request not found!", nil)
		case errors.Is(err, approval.ErrAlreadyResolved):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request is not pending!", nil)
		case request != nil:
			// Resolution committed, only the notification insert failed.
			log.Printf("Error notifying submitter for request %d: %v", request.ID, err)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve request!", nil)
		}
	}

	go notifySubmitterByEmail(request)
	go utils.PushNotificationEvent(request.SubmitterID, models.NotificationSystem, "approval.approved")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request approved successfully!", request)
}

// AdminRejectRequest resolves a pending request as rejected. The
// rejection reason is mandatory and is validated before any mutation.
func AdminRejectRequest(c *fiber.Ctx) error {
	admin := c.Locals("currentUser").(models.User)
	requestID := c.Locals("requestID").(int)
	notes := c.Locals("reviewNotes").(string)

	db := database.Database.Db

	request, err := approval.Reject(db, uint(requestID), admin.ID, notes)
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrMissingReason):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rejection reason is required!", nil)
		case errors.Is(err, approval.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Approval request not found!", nil)
		case errors.Is(err, approval.ErrAlreadyResolved):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request is not pending!", nil)
		case request != nil:
			log.Printf("Error notifying submitter for request %d: %v", request.ID, err)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject request!", nil)
		}
	}

	go notifySubmitterByEmail(request)
	go utils.PushNotificationEvent(request.SubmitterID, models.NotificationSystem, "approval.rejected")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected!", request)
}

func notifySubmitterByEmail(request *models.ApprovalRequest) {
	var submitter models.User
	if err := database.Database.Db.Where("id = ?", request.SubmitterID).First(&submitter).Error; err != nil {
		log.Printf("Error loading submitter %d for email: %v", request.SubmitterID, err)
		return
	}
	utils.SendApprovalResultEmail(submitter.Email, submitter.Name, request.SubjectType, request.Status, request.ReviewNotes)
}
