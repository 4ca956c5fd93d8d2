package entity

import "time"

type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusCancelled RegistrationStatus = "cancelled"
	StatusAttended  RegistrationStatus = "attended"
)

type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"eventId"`
	UserID       string             `json:"userId"`
	UserName     string             `json:"userName"`
	UserEmail    string             `json:"userEmail"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`
	CancelledAt  *time.Time         `json:"cancelledAt,omitempty"`
	AttendedAt   *time.Time         `json:"attendedAt,omitempty"`
}

// Occupies reports whether the registration holds a seat for capacity purposes.
func (r *Registration) Occupies() bool {
	return r.Status != StatusCancelled
}

// Confirmed reports whether the registration is confirmed or still pending.
// Pending rows only come from stores written before registrations were
// confirmed on creation.
func (r *Registration) Confirmed() bool {
	return r.Status == StatusConfirmed || r.Status == StatusPending
}
