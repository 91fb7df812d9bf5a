package notification

import (
	"errors"
	"fmt"
	"time"

	"trainhub/models"

	"gorm.io/gorm"
)

// Caller-facing errors. Controllers map these onto HTTP statuses.
var (
	ErrNotFound  = errors.New("notification not found")
	ErrForbidden = errors.New("notification belongs to another user")
	ErrBadType   = errors.New("unknown notification type")
)

// Audience selects the recipients of a broadcast: everyone, every user
// holding a role, or an explicit id list. It is resolved to a concrete
// id set once per Broadcast call.
type Audience struct {
	all  bool
	role string
	ids  []uint
}

func AudienceAll() Audience              { return Audience{all: true} }
func AudienceRole(role string) Audience  { return Audience{role: role} }
func AudienceUsers(ids ...uint) Audience { return Audience{ids: ids} }

// Resolve returns the concrete recipient id set for the audience.
// Explicit ids are filtered down to users that actually exist.
func (a Audience) Resolve(db *gorm.DB) ([]uint, error) {
	var ids []uint
	q := db.Model(&models.User{}).Where("is_deleted = ?", false)
	switch {
	case a.all:
	case a.role != "":
		q = q.Where("role = ?", a.role)
	default:
		if len(a.ids) == 0 {
			return nil, nil
		}
		q = q.Where("id IN ?", a.ids)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("resolve audience: %w", err)
	}
	return ids, nil
}

func validType(typ string) bool {
	switch typ {
	case models.NotificationSystem, models.NotificationAdmin,
		models.NotificationEnrollment, models.NotificationComment:
		return true
	}
	return false
}

// Send creates exactly one notification row for the recipient.
func Send(db *gorm.DB, recipientID uint, typ, message string) (*models.Notification, error) {
	if !validType(typ) {
		return nil, ErrBadType
	}
	n := models.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
	}
	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Broadcast fans the message out to every resolved recipient, one row
// each. Fan-out is best-effort: a failed insert does not abort the rest,
// but the ids that failed are reported back so the caller can retry only
// those.
func Broadcast(db *gorm.DB, audience Audience, typ, message string) ([]models.Notification, []uint, error) {
	if !validType(typ) {
		return nil, nil, ErrBadType
	}
	recipients, err := audience.Resolve(db)
	if err != nil {
		return nil, nil, err
	}

	created := make([]models.Notification, 0, len(recipients))
	var failed []uint
	for _, id := range recipients {
		n, err := Send(db, id, typ, message)
		if err != nil {
			failed = append(failed, id)
			continue
		}
		created = append(created, *n)
	}
	return created, failed, nil
}

// MarkRead flips is_read for the recipient's own notification. Marking
// an already-read notification is a no-op success.
func MarkRead(db *gorm.DB, id, actorID uint) (*models.Notification, error) {
	var n models.Notification
	if err := db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if n.RecipientID != actorID {
		return nil, ErrForbidden
	}
	if n.IsRead {
		return &n, nil
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := db.Save(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes the recipient's own notification. A missing id is a
// no-op success so double-clicks and retries never surface an error.
func Delete(db *gorm.DB, id, actorID uint) error {
	var n models.Notification
	if err := db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if n.RecipientID != actorID {
		return ErrForbidden
	}
	return db.Delete(&n).Error
}

// ListForRecipient returns the recipient's notifications newest first.
// Filter is "all" (or empty), "unread", or a concrete type.
func ListForRecipient(db *gorm.DB, recipientID uint, filter string) ([]models.Notification, error) {
	q := db.Where("recipient_id = ?", recipientID)
	switch filter {
	case "", "all":
	case "unread":
		q = q.Where("is_read = ?", false)
	default:
		if !validType(filter) {
			return nil, ErrBadType
		}
		q = q.Where("type = ?", filter)
	}

	var list []models.Notification
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UnreadCount is a cheap badge counter for dashboards.
func UnreadCount(db *gorm.DB, recipientID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
