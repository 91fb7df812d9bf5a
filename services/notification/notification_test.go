package notification

import (
	"fmt"
	"testing"

	"trainhub/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@test.local", Role: role, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestSendCreatesExactlyOneRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ana", models.RoleStudent)

	n, err := Send(db, user.ID, models.NotificationSystem, "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if n.IsRead {
		t.Fatalf("new notification must be unread")
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestSendRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob", models.RoleStudent)

	if _, err := Send(db, user.ID, "SPAM", "hello"); err != ErrBadType {
		t.Fatalf("expected ErrBadType, got %v", err)
	}
}

func TestMarkReadOwnershipAndIdempotence(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", models.RoleStudent)
	other := seedUser(t, db, "other", models.RoleStudent)

	n, err := Send(db, owner.ID, models.NotificationAdmin, "notice")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// Non-owner cannot read it, and the row stays untouched.
	if _, err := MarkRead(db, n.ID, other.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	var stored models.Notification
	db.First(&stored, n.ID)
	if stored.IsRead {
		t.Fatalf("forbidden mark-read must not mutate the row")
	}

	first, err := MarkRead(db, n.ID, owner.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if !first.IsRead || first.ReadAt == nil {
		t.Fatalf("expected read notification with read_at set")
	}

	// Second call is a no-op success with the same final state.
	second, err := MarkRead(db, n.ID, owner.ID)
	if err != nil {
		t.Fatalf("second mark read failed: %v", err)
	}
	if !second.IsRead || second.ReadAt == nil || second.ReadAt.Unix() != first.ReadAt.Unix() {
		t.Fatalf("idempotent mark read must return the same final state")
	}
}

func TestMarkReadMissing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ana", models.RoleStudent)

	if _, err := MarkRead(db, 999, user.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIdempotentAndOwned(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", models.RoleStudent)
	other := seedUser(t, db, "other", models.RoleStudent)

	n, err := Send(db, owner.ID, models.NotificationComment, "bye")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := Delete(db, n.ID, other.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := Delete(db, n.ID, owner.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// Deleting again, or deleting a nonexistent id, is a success.
	if err := Delete(db, n.ID, owner.ID); err != nil {
		t.Fatalf("second delete must be a no-op success, got %v", err)
	}
	if err := Delete(db, 424242, owner.ID); err != nil {
		t.Fatalf("deleting unknown id must be a no-op success, got %v", err)
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected 0 rows, got %d", count)
	}
}

func TestBroadcastRoleFanout(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 5; i++ {
		seedUser(t, db, fmt.Sprintf("student%d", i), models.RoleStudent)
	}
	seedUser(t, db, "trainer", models.RoleTrainer)
	seedUser(t, db, "admin", models.RoleAdmin)

	created, failed, err := Broadcast(db, AudienceRole(models.RoleStudent), models.NotificationAdmin, "maintenance tonight")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if len(failed) != 0 {
		t.Fatalf("expected no failures, got %v", failed)
	}
	if len(created) != 5 {
		t.Fatalf("expected 5 notifications, got %d", len(created))
	}

	seen := map[uint]bool{}
	for _, n := range created {
		if n.IsRead {
			t.Fatalf("broadcast rows must start unread")
		}
		if seen[n.RecipientID] {
			t.Fatalf("recipient %d notified twice", n.RecipientID)
		}
		seen[n.RecipientID] = true
	}
}

func TestBroadcastEmptyAudience(t *testing.T) {
	db := newTestDB(t)

	created, failed, err := Broadcast(db, AudienceUsers(), models.NotificationSystem, "nobody home")
	if err != nil {
		t.Fatalf("empty audience must not be an error, got %v", err)
	}
	if len(created) != 0 || len(failed) != 0 {
		t.Fatalf("expected empty result, got %d created %d failed", len(created), len(failed))
	}
}

func TestAudienceExplicitFiltersUnknownIds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ana", models.RoleStudent)

	ids, err := AudienceUsers(user.ID, 9999).Resolve(db)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != user.ID {
		t.Fatalf("expected only the existing user, got %v", ids)
	}
}

func TestListForRecipientFilters(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ana", models.RoleStudent)

	a, _ := Send(db, user.ID, models.NotificationSystem, "first")
	Send(db, user.ID, models.NotificationEnrollment, "second")
	MarkRead(db, a.ID, user.ID)

	all, err := ListForRecipient(db, user.ID, "all")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d (%v)", len(all), err)
	}

	unread, err := ListForRecipient(db, user.ID, "unread")
	if err != nil || len(unread) != 1 {
		t.Fatalf("expected 1 unread, got %d (%v)", len(unread), err)
	}

	byType, err := ListForRecipient(db, user.ID, models.NotificationEnrollment)
	if err != nil || len(byType) != 1 {
		t.Fatalf("expected 1 enrollment notification, got %d (%v)", len(byType), err)
	}

	if _, err := ListForRecipient(db, user.ID, "JUNK"); err != ErrBadType {
		t.Fatalf("expected ErrBadType for junk filter, got %v", err)
	}
}
