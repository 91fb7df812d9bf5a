package approval

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trainhub/models"
	"trainhub/services/notification"

	"gorm.io/gorm"
)

// Caller-facing errors. Controllers map these onto HTTP statuses.
var (
	ErrNotFound         = errors.New("approval request not found")
	ErrDuplicatePending = errors.New("a pending request already exists for this subject")
	ErrAlreadyResolved  = errors.New("approval request is already resolved")
	ErrMissingReason    = errors.New("rejection requires a reason")
	ErrBadSubjectType   = errors.New("unknown subject type")
)

func validSubjectType(subjectType string) bool {
	return subjectType == models.SubjectCourse || subjectType == models.SubjectSession
}

// snapshotSubject captures the subject row as submitted, for the audit
// trail. A missing subject is not fatal here; referential checks belong
// to the callers that create subjects.
func snapshotSubject(db *gorm.DB, subjectType string, subjectID uint) []byte {
	var subject interface{}
	switch subjectType {
	case models.SubjectCourse:
		var course models.Course
		if err := db.First(&course, subjectID).Error; err != nil {
			return nil
		}
		subject = course
	case models.SubjectSession:
		var session models.Session
		if err := db.First(&session, subjectID).Error; err != nil {
			return nil
		}
		subject = session
	}
	raw, err := json.Marshal(subject)
	if err != nil {
		return nil
	}
	return raw
}

// Submit opens a PENDING moderation request for the subject. At most one
// pending request may exist per subject; the partial unique index on
// (subject_type, subject_id) backs this check under concurrent submits.
func Submit(db *gorm.DB, subjectType string, subjectID, submitterID uint) (*models.ApprovalRequest, error) {
	if !validSubjectType(subjectType) {
		return nil, ErrBadSubjectType
	}

	request := models.ApprovalRequest{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		SubmitterID: submitterID,
		Status:      models.ApprovalPending,
		Snapshot:    snapshotSubject(db, subjectType, subjectID),
		RequestedAt: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.ApprovalRequest{}).
			Where("subject_type = ? AND subject_id = ? AND status = ?",
				subjectType, subjectID, models.ApprovalPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicatePending
		}
		if err := tx.Create(&request).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicatePending
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Approve resolves a pending request as APPROVED and notifies the
// submitter. Resolution is terminal; re-resolving fails.
func Approve(db *gorm.DB, requestID, reviewerID uint) (*models.ApprovalRequest, error) {
	return resolve(db, requestID, reviewerID, models.ApprovalApproved, "")
}

// Reject resolves a pending request as REJECTED. The reason is required
// and is validated before any state is touched; it is included in the
// submitter's notification.
func Reject(db *gorm.DB, requestID, reviewerID uint, notes string) (*models.ApprovalRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrMissingReason
	}
	return resolve(db, requestID, reviewerID, models.ApprovalRejected, notes)
}

func resolve(db *gorm.DB, requestID, reviewerID uint, status, notes string) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Guarded update: only a PENDING row is touched, so two
		// reviewers racing on the same request cannot both win.
		result := tx.Model(&models.ApprovalRequest{}).
			Where("id = ? AND status = ?", requestID, models.ApprovalPending).
			Updates(map[string]interface{}{
				"status":       status,
				"reviewer_id":  reviewerID,
				"review_notes": notes,
				"resolved_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.First(&models.ApprovalRequest{}, requestID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			return ErrAlreadyResolved
		}

		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		return syncSubject(tx, &request)
	})
	if err != nil {
		return nil, err
	}

	// Exactly one notification to the submitter per resolution. The
	// resolution has committed; a failed insert here is logged by the
	// caller, not rolled back.
	message := resolutionMessage(&request)
	if _, err := notification.Send(db, request.SubmitterID, models.NotificationSystem, message); err != nil {
		return &request, fmt.Errorf("request resolved but notification failed: %w", err)
	}
	return &request, nil
}

// syncSubject mirrors the resolution onto the subject row so listing
// queries can filter on course status directly. The ledger stays the
// source of truth for bookability checks.
func syncSubject(tx *gorm.DB, request *models.ApprovalRequest) error {
	if request.SubjectType != models.SubjectCourse {
		return nil
	}
	updates := map[string]interface{}{
		"status":       models.CourseRejected,
		"is_published": false,
	}
	if request.Status == models.ApprovalApproved {
		updates["status"] = models.CourseApproved
		updates["is_published"] = true
	}
	return tx.Model(&models.Course{}).Where("id = ?", request.SubjectID).Updates(updates).Error
}

func resolutionMessage(request *models.ApprovalRequest) string {
	subject := "course"
	if request.SubjectType == models.SubjectSession {
		subject = "session"
	}
	if request.Status == models.ApprovalApproved {
		return fmt.Sprintf("Your %s has been approved and is now live.", subject)
	}
	return fmt.Sprintf("Your %s was rejected: %s", subject, request.ReviewNotes)
}

// ListPending returns open requests oldest first so moderators clear a
// FIFO queue. subjectType is optional; empty means both kinds.
func ListPending(db *gorm.DB, subjectType string) ([]models.ApprovalRequest, error) {
	q := db.Where("status = ?", models.ApprovalPending)
	if subjectType != "" {
		if !validSubjectType(subjectType) {
			return nil, ErrBadSubjectType
		}
		q = q.Where("subject_type = ?", subjectType)
	}

	var requests []models.ApprovalRequest
	if err := q.Order("requested_at asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// LatestForSubject returns the most recent request for a subject, or
// gorm.ErrRecordNotFound if the subject was never submitted.
func LatestForSubject(db *gorm.DB, subjectType string, subjectID uint) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest
	err := db.Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Order("requested_at desc").
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// isUniqueViolation matches the duplicate-key errors the supported
// dialects raise when the partial pending index fires.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}
