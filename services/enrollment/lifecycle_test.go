package enrollment

import (
	"testing"
	"time"

	"trainhub/models"
	"trainhub/services/approval"
	"trainhub/services/notification"

	"github.com/stretchr/testify/require"
)

// TestCourseLifecycle walks the full path from submission through
// rejection, resubmission, approval, scheduling and a contested
// enrollment, the way the three ledgers interact in production.
func TestCourseLifecycle(t *testing.T) {
	db := newTestDB(t)

	trainer := seedUser(t, db, "tara", models.RoleTrainer)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	learnerA := seedUser(t, db, "ana", models.RoleStudent)
	learnerB := seedUser(t, db, "bob", models.RoleStudent)
	learnerC := seedUser(t, db, "cleo", models.RoleStudent)

	course := models.Course{Title: "Distributed Systems Live", TrainerID: trainer.ID, MaxStudents: 2}
	require.NoError(t, db.Create(&course).Error)

	// Trainer submits, admin rejects with a reason.
	first, err := approval.Submit(db, models.SubjectCourse, course.ID, trainer.ID)
	require.NoError(t, err)
	_, err = approval.Reject(db, first.ID, admin.ID, "needs more detail")
	require.NoError(t, err)

	unread, err := notification.ListForRecipient(db, trainer.ID, "unread")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Contains(t, unread[0].Message, "needs more detail")

	// Trainer resubmits; the rejected request is untouched.
	second, err := approval.Submit(db, models.SubjectCourse, course.ID, trainer.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	var old models.ApprovalRequest
	require.NoError(t, db.First(&old, first.ID).Error)
	require.Equal(t, models.ApprovalRejected, old.Status)

	// Admin approves; a session with two seats goes up.
	_, err = approval.Approve(db, second.ID, admin.ID)
	require.NoError(t, err)

	session := models.Session{
		CourseID:    course.ID,
		Title:       "First live session",
		ScheduledAt: time.Now().Add(72 * time.Hour),
		MaxStudents: 2,
	}
	require.NoError(t, db.Create(&session).Error)

	// A and B take the seats; C bounces off the full session.
	_, err = Enroll(db, session.ID, learnerA.ID)
	require.NoError(t, err)
	_, err = Enroll(db, session.ID, learnerB.ID)
	require.NoError(t, err)
	_, err = Enroll(db, session.ID, learnerC.ID)
	require.ErrorIs(t, err, ErrSessionFull)

	// A withdraws; the freed seat goes to C.
	var enrollmentA models.Enrollment
	require.NoError(t, db.Where("session_id = ? AND learner_id = ?", session.ID, learnerA.ID).First(&enrollmentA).Error)
	require.NoError(t, Withdraw(db, enrollmentA.ID, learnerA.ID))

	_, err = Enroll(db, session.ID, learnerC.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Enrollment{}).Where("session_id = ?", session.ID).Count(&count)
	require.EqualValues(t, 2, count)
}
