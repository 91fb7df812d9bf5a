package utils

import (
	"log"
	"time"

	"trainhub/config"

	"github.com/go-resty/resty/v2"
)

var webhookClient = resty.New().SetTimeout(10 * time.Second)

// PushNotificationEvent mirrors a notification event to the configured
// external webhook (push gateways, Slack bridges and the like).
// Fire-and-forget: delivery failures are logged, never surfaced.
func PushNotificationEvent(recipientID uint, notificationType, event string) {
	url := config.AppConfig.NotifyWebhookURL
	if url == "" {
		return
	}

	resp, err := webhookClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":        event,
			"recipient_id": recipientID,
			"type":         notificationType,
			"sent_at":      time.Now().Format(time.RFC3339),
		}).
		Post(url)
	if err != nil {
		log.Printf("[WEBHOOK] Error pushing notification event: %v", err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("[WEBHOOK] Webhook returned %d for event %s", resp.StatusCode(), event)
	}
}
