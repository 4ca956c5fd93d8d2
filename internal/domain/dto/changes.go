package dto

import "github.com/academic-events/eventhub/internal/domain/entity"

// Changes is a set of collection replacements written in one atomic step.
// A nil slice leaves its collection untouched.
type Changes struct {
	Users         []entity.User
	Events        []entity.Event
	Registrations []entity.Registration
	Certificates  []entity.Certificate
	Notifications []entity.Notification

	// SessionSet writes Session, where a nil Session clears it.
	SessionSet bool
	Session    *entity.Session
}

func (c *Changes) Empty() bool {
	return c.Users == nil && c.Events == nil && c.Registrations == nil &&
		c.Certificates == nil && c.Notifications == nil && !c.SessionSet
}
