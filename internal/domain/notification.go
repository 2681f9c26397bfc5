package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message addressed to a single user.
type Notification struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             string
	Message           string
	Type              NotificationType
	RelatedEntityType ReportKind
	RelatedEntityID   int64
	IsRead            bool
	CreatedAt         time.Time
}

// StatusChange describes an admin-driven status transition. It is the payload
// of every delivery job.
type StatusChange struct {
	Kind      ReportKind   `json:"kind"`
	ReportID  int64        `json:"report_id"`
	OwnerID   uuid.UUID    `json:"owner_id"`
	Title     string       `json:"title"`
	OldStatus ReportStatus `json:"old_status"`
	NewStatus ReportStatus `json:"new_status"`
}

// DeliveryJob is one outbox entry for a single channel.
type DeliveryJob struct {
	ID            uuid.UUID
	Channel       DeliveryChannel
	Payload       StatusChange
	Status        DeliveryStatus
	Attempts      int
	NextAttemptAt time.Time
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RetryDelay returns the backoff before the next attempt after the given
// number of failed attempts: 2^attempts seconds.
func RetryDelay(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > 20 {
		attempts = 20
	}
	return time.Duration(math.Pow(2, float64(attempts))) * time.Second
}
