package enrollment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"trainhub/models"
	"trainhub/services/approval"
	"trainhub/services/notification"

	"gorm.io/gorm"
)

// Caller-facing errors. "Session full" and "already enrolled" are kept
// distinct because the remediation differs for the user.
var (
	ErrNotFound           = errors.New("enrollment not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotBookable = errors.New("the owning course is not approved for enrollment")
	ErrAlreadyEnrolled    = errors.New("learner is already enrolled in this session")
	ErrSessionFull        = errors.New("session has no remaining seats")
	ErrForbidden          = errors.New("actor may not remove this enrollment")
)

// Per-session locks serialize the count-check-insert sequence within the
// process. The unique index on (session_id, learner_id) and the count
// re-check inside the transaction keep the invariants intact even under
// direct datastore access.
var (
	locksMu      sync.Mutex
	sessionLocks = map[uint]*sync.Mutex{}
)

func lockSession(sessionID uint) *sync.Mutex {
	locksMu.Lock()
	defer locksMu.Unlock()
	lock, ok := sessionLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		sessionLocks[sessionID] = lock
	}
	return lock
}

// Enroll binds the learner to the session. The bookability, uniqueness
// and capacity checks plus the insert run as one atomic unit per
// session: two concurrent calls racing for the last seat cannot both
// succeed, and two calls for the same learner yield exactly one row.
func Enroll(db *gorm.DB, sessionID, learnerID uint) (*models.Enrollment, error) {
	lock := lockSession(sessionID)
	lock.Lock()
	defer lock.Unlock()

	var enrollment models.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Where("id = ? AND is_deleted = ?", sessionID, false).
			First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		// A session is bookable only while the owning course's latest
		// approval request is APPROVED. No request at all means not
		// bookable.
		latest, err := approval.LatestForSubject(tx, models.SubjectCourse, session.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotBookable
			}
			return err
		}
		if latest.Status != models.ApprovalApproved {
			return ErrSessionNotBookable
		}

		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("session_id = ? AND learner_id = ?", sessionID, learnerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var count int64
		if err := tx.Model(&models.Enrollment{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(session.MaxStudents) {
			return ErrSessionFull
		}

		enrollment = models.Enrollment{
			SessionID:  sessionID,
			LearnerID:  learnerID,
			EnrolledAt: time.Now(),
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: the seat is taken either way.
	if _, err := notification.Send(db, learnerID, models.NotificationEnrollment,
		"You are enrolled. See your dashboard for the meeting link."); err != nil {
		return &enrollment, fmt.Errorf("enrolled but notification failed: %w", err)
	}
	return &enrollment, nil
}

// Withdraw removes an enrollment. Allowed for the enrolled learner, the
// course's trainer, or an admin; the row is hard-deleted so the seat
// frees immediately.
func Withdraw(db *gorm.DB, enrollmentID, actorID uint) error {
	var enrollment models.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	allowed, err := canWithdraw(db, &enrollment, actorID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}

	lock := lockSession(enrollment.SessionID)
	lock.Lock()
	defer lock.Unlock()

	return db.Delete(&models.Enrollment{}, enrollment.ID).Error
}

func canWithdraw(db *gorm.DB, enrollment *models.Enrollment, actorID uint) (bool, error) {
	if enrollment.LearnerID == actorID {
		return true, nil
	}

	var actor models.User
	if err := db.Where("id = ? AND is_deleted = ?", actorID, false).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if actor.Role == models.RoleAdmin {
		return true, nil
	}

	var session models.Session
	if err := db.First(&session, enrollment.SessionID).Error; err != nil {
		return false, err
	}
	var course models.Course
	if err := db.First(&course, session.CourseID).Error; err != nil {
		return false, err
	}
	return course.TrainerID == actorID, nil
}

// ListForSession returns the session's enrollments, oldest first.
func ListForSession(db *gorm.DB, sessionID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	err := db.Where("session_id = ?", sessionID).Order("enrolled_at asc").Find(&list).Error
	return list, err
}

// ListForLearner returns the learner's enrollments, newest first.
func ListForLearner(db *gorm.DB, learnerID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	err := db.Where("learner_id = ?", learnerID).Order("enrolled_at desc").Find(&list).Error
	return list, err
}

// RemainingCapacity reports free seats, saturating at zero. It is a
// display hint only; Enroll never trusts it.
func RemainingCapacity(db *gorm.DB, sessionID uint) (int, error) {
	var session models.Session
	if err := db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	var count int64
	if err := db.Model(&models.Enrollment{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	remaining := session.MaxStudents - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
