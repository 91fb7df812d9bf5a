package utils

import (
	"fmt"
	"log"

	"trainhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. With no API
// key configured (local dev) the send is skipped and logged.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("TrainHub", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid returned %d for %s", response.StatusCode, toEmail)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5C6BC0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TRAINHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 TrainHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to TrainHub! Browse the catalog and book your first live session.</p>
	`, name)

	if err := SendEmail(email, name, "Welcome to TrainHub", getEmailTemplate("Welcome aboard", body)); err != nil {
		log.Printf("[EMAIL] Failed to send welcome email to %s: %v", email, err)
	}
}

// SendApprovalResultEmail tells a trainer how their submission resolved.
func SendApprovalResultEmail(email, name, subjectType, status, notes string) {
	subjectName := "course"
	if subjectType == "SESSION" {
		subjectName = "session"
	}

	var title, body string
	if status == "APPROVED" {
		title = "Your " + subjectName + " is live"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Good news: your %s has been approved and is now visible in the catalog.</p>
		`, name, subjectName)
	} else {
		title = "Your " + subjectName + " was not approved"
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your %s was rejected by a reviewer.</p>
			<div class="info-box">%s</div>
			<p>You can revise and resubmit it at any time.</p>
		`, name, subjectName, notes)
	}

	if err := SendEmail(email, name, title, getEmailTemplate(title, body)); err != nil {
		log.Printf("[EMAIL] Failed to send approval result email to %s: %v", email, err)
	}
}

// SendSessionReminderEmail reminds a learner of tomorrow's session.
func SendSessionReminderEmail(email, name, sessionTitle, when, meetingLink string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Reminder: your session <strong>%s</strong> starts at %s.</p>
		<div class="info-box">Join here: <a href="%s">%s</a></div>
	`, name, sessionTitle, when, meetingLink, meetingLink)

	if err := SendEmail(email, name, "Session reminder: "+sessionTitle, getEmailTemplate("See you soon", body)); err != nil {
		log.Printf("[EMAIL] Failed to send reminder email to %s: %v", email, err)
	}
}
