package enrollment

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"trainhub/models"
	"trainhub/services/approval"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Session{},
		&models.ApprovalRequest{}, &models.Enrollment{}, &models.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@test.local", Role: role, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedBookableSession creates a trainer, an approved course and one
// session with the given capacity.
func seedBookableSession(t *testing.T, db *gorm.DB, capacity int) (models.User, models.Session) {
	t.Helper()
	trainer := seedUser(t, db, fmt.Sprintf("trainer-%d", time.Now().UnixNano()), models.RoleTrainer)
	course := models.Course{Title: "Live Go Workshop", TrainerID: trainer.ID, MaxStudents: capacity}
	require.NoError(t, db.Create(&course).Error)

	request, err := approval.Submit(db, models.SubjectCourse, course.ID, trainer.ID)
	require.NoError(t, err)
	_, err = approval.Approve(db, request.ID, 999)
	require.NoError(t, err)

	session := models.Session{
		CourseID:    course.ID,
		Title:       "Kickoff",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		MaxStudents: capacity,
		MeetingLink: "https://meet.test/abc",
	}
	require.NoError(t, db.Create(&session).Error)
	return trainer, session
}

func TestEnrollHappyPath(t *testing.T) {
	db := newTestDB(t)
	_, session := seedBookableSession(t, db, 2)
	learner := seedUser(t, db, "ana", models.RoleStudent)

	created, err := Enroll(db, session.ID, learner.ID)
	require.NoError(t, err)
	require.Equal(t, learner.ID, created.LearnerID)
	require.False(t, created.EnrolledAt.IsZero())

	remaining, err := RemainingCapacity(db, session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, remaining)

	// The learner gets an enrollment notification.
	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", learner.ID, models.NotificationEnrollment).
		Count(&count)
	require.EqualValues(t, 1, count)
}

func TestEnrollUnbookableStates(t *testing.T) {
	db := newTestDB(t)
	learner := seedUser(t, db, "ana", models.RoleStudent)

	_, err := Enroll(db, 12345, learner.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// Course without any approval request: not bookable.
	trainer := seedUser(t, db, "tom", models.RoleTrainer)
	course := models.Course{Title: "Unreviewed", TrainerID: trainer.ID, MaxStudents: 5}
	require.NoError(t, db.Create(&course).Error)
	session := models.Session{CourseID: course.ID, ScheduledAt: time.Now().Add(time.Hour), MaxStudents: 5}
	require.NoError(t, db.Create(&session).Error)

	_, err = Enroll(db, session.ID, learner.ID)
	require.ErrorIs(t, err, ErrSessionNotBookable)

	// Rejected course: still not bookable.
	request, err := approval.Submit(db, models.SubjectCourse, course.ID, trainer.ID)
	require.NoError(t, err)
	_, err = approval.Reject(db, request.ID, 999, "not good enough")
	require.NoError(t, err)

	_, err = Enroll(db, session.ID, learner.ID)
	require.ErrorIs(t, err, ErrSessionNotBookable)
}

func TestEnrollDuplicate(t *testing.T) {
	db := newTestDB(t)
	_, session := seedBookableSession(t, db, 5)
	learner := seedUser(t, db, "ana", models.RoleStudent)

	_, err := Enroll(db, session.ID, learner.ID)
	require.NoError(t, err)

	_, err = Enroll(db, session.ID, learner.ID)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	db.Model(&models.Enrollment{}).Where("session_id = ?", session.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestEnrollCapacityUnderConcurrency(t *testing.T) {
	db := newTestDB(t)
	const capacity = 3
	const callers = 10
	_, session := seedBookableSession(t, db, capacity)

	learners := make([]models.User, callers)
	for i := range learners {
		learners[i] = seedUser(t, db, fmt.Sprintf("learner%d", i), models.RoleStudent)
	}

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = Enroll(db, session.ID, learners[i].ID)
		}(i)
	}
	wg.Wait()

	succeeded, full := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSessionFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, capacity, succeeded, "exactly capacity callers may win")
	require.Equal(t, callers-capacity, full)

	var count int64
	db.Model(&models.Enrollment{}).Where("session_id = ?", session.ID).Count(&count)
	require.EqualValues(t, capacity, count, "stored enrollments must not exceed capacity")
}

func TestEnrollUniquenessUnderConcurrency(t *testing.T) {
	db := newTestDB(t)
	_, session := seedBookableSession(t, db, 10)
	learner := seedUser(t, db, "ana", models.RoleStudent)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = Enroll(db, session.ID, learner.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, duplicate int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyEnrolled):
			duplicate++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, duplicate)
}

func TestWithdrawPermissionsAndSeatRelease(t *testing.T) {
	db := newTestDB(t)
	trainer, session := seedBookableSession(t, db, 1)
	learner := seedUser(t, db, "ana", models.RoleStudent)
	stranger := seedUser(t, db, "sam", models.RoleStudent)
	admin := seedUser(t, db, "root", models.RoleAdmin)

	created, err := Enroll(db, session.ID, learner.ID)
	require.NoError(t, err)

	err = Withdraw(db, created.ID, stranger.ID)
	require.ErrorIs(t, err, ErrForbidden)

	err = Withdraw(db, 9999, learner.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The learner frees the seat; someone else can take it.
	require.NoError(t, Withdraw(db, created.ID, learner.ID))
	remaining, err := RemainingCapacity(db, session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, remaining)

	second, err := Enroll(db, session.ID, stranger.ID)
	require.NoError(t, err)

	// Trainer and admin may also remove enrollments.
	require.NoError(t, Withdraw(db, second.ID, trainer.ID))
	third, err := Enroll(db, session.ID, stranger.ID)
	require.NoError(t, err)
	require.NoError(t, Withdraw(db, third.ID, admin.ID))
}

func TestRemainingCapacitySaturatesAtZero(t *testing.T) {
	db := newTestDB(t)
	_, session := seedBookableSession(t, db, 1)

	// Simulate external over-enrollment by writing rows directly.
	for i := 0; i < 3; i++ {
		row := models.Enrollment{SessionID: session.ID, LearnerID: uint(1000 + i), EnrolledAt: time.Now()}
		require.NoError(t, db.Create(&row).Error)
	}

	remaining, err := RemainingCapacity(db, session.ID)
	require.NoError(t, err)
	require.Equal(t, 0, remaining, "remaining capacity never goes negative")
}

func TestListProjections(t *testing.T) {
	db := newTestDB(t)
	_, session := seedBookableSession(t, db, 5)
	a := seedUser(t, db, "ana", models.RoleStudent)
	b := seedUser(t, db, "bob", models.RoleStudent)

	_, err := Enroll(db, session.ID, a.ID)
	require.NoError(t, err)
	_, err = Enroll(db, session.ID, b.ID)
	require.NoError(t, err)

	bySession, err := ListForSession(db, session.ID)
	require.NoError(t, err)
	require.Len(t, bySession, 2)

	byLearner, err := ListForLearner(db, a.ID)
	require.NoError(t, err)
	require.Len(t, byLearner, 1)
	require.Equal(t, session.ID, byLearner[0].SessionID)
}
