package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Approval subject types
const (
	SubjectCourse  = "COURSE"
	SubjectSession = "SESSION"
)

// Approval request statuses
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// ApprovalRequest is the moderation audit trail for trainer-authored
// content. Rows are never deleted; resolution is terminal. At most one
// PENDING request may exist per (subject_type, subject_id).
type ApprovalRequest struct {
	gorm.Model
	SubjectType string         `json:"subject_type" gorm:"index:idx_subject_lookup;not null"` // COURSE, SESSION
	SubjectID   uint           `json:"subject_id" gorm:"index:idx_subject_lookup;not null"`
	SubmitterID uint           `json:"submitter_id" gorm:"index;not null"`
	Status      string         `json:"status" gorm:"default:'PENDING';index"`
	ReviewerID  *uint          `json:"reviewer_id"`
	ReviewNotes string         `json:"review_notes" gorm:"type:text"` // required when rejecting
	Snapshot    datatypes.JSON `json:"snapshot"`                      // subject as submitted, for the audit trail
	RequestedAt time.Time      `json:"requested_at" gorm:"index"`
	ResolvedAt  *time.Time     `json:"resolved_at"`
}
