package utils

import (
	"fmt"
	"log"
	"time"

	"trainhub/database"
	"trainhub/models"
	"trainhub/services/notification"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the daily session reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing session reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM to remind learners of tomorrow's sessions
	c.AddFunc("0 8 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily session reminder check...")
		ProcessUpcomingSessionReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Scheduler started - runs daily at 8 AM")
}

// ProcessUpcomingSessionReminders notifies every learner enrolled in a
// session that starts within the next 24 hours.
func ProcessUpcomingSessionReminders() {
	db := database.Database.Db
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)

	var sessions []models.Session
	if err := db.
		Where("is_deleted = ? AND scheduled_at BETWEEN ? AND ?", false, now, tomorrow).
		Find(&sessions).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching upcoming sessions: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d sessions starting within 24h", len(sessions))

	for _, session := range sessions {
		var enrollments []models.Enrollment
		if err := db.Where("session_id = ?", session.ID).Find(&enrollments).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching enrollments for session %d: %v", session.ID, err)
			continue
		}

		when := session.ScheduledAt.Format("2006-01-02 15:04")
		message := fmt.Sprintf("Reminder: %q starts at %s.", session.Title, when)

		for _, e := range enrollments {
			if _, err := notification.Send(db, e.LearnerID, models.NotificationSystem, message); err != nil {
				log.Printf("[REMINDER-SCHEDULER] Error notifying learner %d: %v", e.LearnerID, err)
				continue
			}

			var learner models.User
			if err := db.Where("id = ? AND is_deleted = ?", e.LearnerID, false).First(&learner).Error; err != nil {
				continue
			}
			go SendSessionReminderEmail(learner.Email, learner.Name, session.Title, when, session.MeetingLink)
		}
	}
}
