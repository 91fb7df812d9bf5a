package models

import "time"

// Notification types
const (
	NotificationSystem     = "SYSTEM"
	NotificationAdmin      = "ADMIN"
	NotificationEnrollment = "ENROLLMENT"
	NotificationComment    = "COMMENT"
)

// Notification is a per-recipient mailbox row. A broadcast to N users
// creates N independent rows, each owned solely by its recipient.
// Deletion is hard and idempotent; is_read only ever goes false -> true.
type Notification struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	RecipientID uint       `json:"recipient_id" gorm:"index;not null"`
	Type        string     `json:"type" gorm:"size:20;index"` // SYSTEM, ADMIN, ENROLLMENT, COMMENT
	Message     string     `json:"message" gorm:"type:text;not null"`
	IsRead      bool       `json:"is_read" gorm:"default:false"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
}
