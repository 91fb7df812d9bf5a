package models

import "gorm.io/gorm"

// Course statuses
const (
	CourseDraft    = "DRAFT"
	CourseInReview = "IN_REVIEW"
	CourseApproved = "APPROVED"
	CourseRejected = "REJECTED"
)

// Course represents a trainer-authored live training course.
// A course is publicly listed and schedulable only after its latest
// approval request has been approved.
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	TrainerID    uint   `json:"trainer_id" gorm:"index;not null"`
	Category     string `json:"category"`
	MaxStudents  int    `json:"max_students" gorm:"default:10"` // default capacity copied to sessions
	Status       string `json:"status" gorm:"default:'DRAFT'"`  // DRAFT, IN_REVIEW, APPROVED, REJECTED
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
