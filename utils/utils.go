package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateMeetingLink mints an opaque meeting link for a session when
// the trainer does not provide one. The platform only stores and
// surfaces the string; it does not manage the meeting itself.
func GenerateMeetingLink() string {
	return fmt.Sprintf("https://meet.trainhub.io/%s", uuid.NewString())
}
