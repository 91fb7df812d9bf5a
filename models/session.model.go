package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a scheduled live occurrence of a course. MaxStudents is
// copied from the course at scheduling time and is the hard seat
// ceiling the enrollment ledger enforces.
type Session struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"index;not null"`
	DurationMin int       `json:"duration_min" gorm:"default:60"`
	MaxStudents int       `json:"max_students" gorm:"not null"` // always >= 1
	MeetingLink string    `json:"meeting_link"`                 // opaque, surfaced as-is
	IsDeleted   bool      `gorm:"default:false"`
}
