package models

import "time"

// Enrollment binds a learner to a session. The (session_id, learner_id)
// unique index backs the once-per-learner invariant at the schema level;
// rows are hard-deleted on withdrawal so the seat frees immediately and
// the learner can re-enroll later.
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	SessionID  uint      `json:"session_id" gorm:"uniqueIndex:idx_session_learner;not null"`
	LearnerID  uint      `json:"learner_id" gorm:"uniqueIndex:idx_session_learner;not null"`
	EnrolledAt time.Time `json:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
