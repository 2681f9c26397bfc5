package notification

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// StatusTitle is the notification and email subject for a status change.
func StatusTitle(change domain.StatusChange) string {
	return change.Kind.DisplayName() + " Status Updated"
}

// StatusMessage is the in-app message body for a status change.
func StatusMessage(change domain.StatusChange) string {
	return fmt.Sprintf("Your %s %q is now %s.",
		strings.ToLower(change.Kind.DisplayName()), change.Title, HumanStatus(change.NewStatus))
}

// HumanStatus renders a status for people: "under-investigation" becomes
// "under investigation".
func HumanStatus(s domain.ReportStatus) string {
	return strings.ReplaceAll(s.String(), "-", " ")
}

// NewStatusNotification builds the in-app notification for the report owner.
func NewStatusNotification(change domain.StatusChange) *domain.Notification {
	return &domain.Notification{
		UserID:            change.OwnerID,
		Title:             StatusTitle(change),
		Message:           StatusMessage(change),
		Type:              domain.NotificationTypeStatusChange,
		RelatedEntityType: change.Kind,
		RelatedEntityID:   change.ReportID,
	}
}
