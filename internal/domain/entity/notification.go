package entity

import "time"

type NotificationType string

const (
	NotificationNewRegistration       NotificationType = "new_registration"
	NotificationRegistrationCancelled NotificationType = "registration_cancelled"
	NotificationEventCreated          NotificationType = "event_created"
	NotificationEventUpdated          NotificationType = "event_updated"
	NotificationEventReminder         NotificationType = "event_reminder"
	NotificationCertificateIssued     NotificationType = "certificate_issued"
)

// Notification is a message addressed to a single user. Only Read changes after creation.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	EventID   *string          `json:"eventId"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (n *Notification) IsAbout(eventID string) bool {
	return n.EventID != nil && *n.EventID == eventID
}
