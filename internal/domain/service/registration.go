package service

import (
	"context"
	"fmt"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
)

// RegisterForEvent registers the session user for an active event. The
// registration is confirmed immediately and every non-cancelled registration
// counts against the capacity.
func (m *Manager) RegisterForEvent(ctx context.Context, eventID string) (*entity.Registration, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}
	idx := activeEventIndex(events, eventID)
	if idx == -1 {
		return nil, errorz.ErrNotFound
	}
	event := events[idx]

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	occupied := 0
	for _, r := range registrations {
		if r.EventID != eventID || !r.Occupies() {
			continue
		}
		if r.UserID == session.ID {
			return nil, errorz.ErrAlreadyRegistered
		}
		occupied++
	}
	if event.MaxParticipants.Limited() && occupied >= int(event.MaxParticipants) {
		return nil, errorz.ErrEventFull
	}

	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	registration := entity.Registration{
		ID:           m.newID(),
		EventID:      eventID,
		UserID:       session.ID,
		UserName:     session.Name,
		UserEmail:    session.Email,
		Status:       entity.StatusConfirmed,
		RegisteredAt: m.now(),
	}
	notice := m.notification(dto.NotificationInput{
		UserID:  event.OrganizerID,
		Type:    entity.NotificationNewRegistration,
		Title:   "New registration",
		Message: fmt.Sprintf("%s registered for the event \"%s\"", session.Name, event.Title),
		EventID: eventID,
	})

	err = m.storage.Save(ctx, dto.Changes{
		Registrations: append(registrations, registration),
		Notifications: append(notifications, notice),
	})
	if err != nil {
		return nil, err
	}
	m.deliver(ctx, notice)

	m.logger.Infof("User registered for event (event_id=%s, user_id=%s)", eventID, session.ID)
	return &registration, nil
}

// CancelRegistration cancels the session user's registration for an event.
// The organizer is notified while the event is still active.
func (m *Manager) CancelRegistration(ctx context.Context, eventID string) (*entity.Registration, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	idx := latestRegistration(registrations, eventID, session.ID)
	if idx == -1 {
		return nil, errorz.ErrNotFound
	}
	registration := &registrations[idx]
	switch registration.Status {
	case entity.StatusCancelled:
		return nil, errorz.ErrAlreadyCancelled
	case entity.StatusAttended:
		return nil, fmt.Errorf("%w: attendance already confirmed", errorz.ErrPreconditionFailed)
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	registration.Status = entity.StatusCancelled
	registration.CancelledAt = &now
	changes := dto.Changes{Registrations: registrations}

	var created []entity.Notification
	if i := activeEventIndex(events, eventID); i != -1 {
		notifications, err := m.storage.Notifications(ctx)
		if err != nil {
			return nil, err
		}
		created = append(created, m.notification(dto.NotificationInput{
			UserID:  events[i].OrganizerID,
			Type:    entity.NotificationRegistrationCancelled,
			Title:   "Registration cancelled",
			Message: fmt.Sprintf("%s cancelled the registration for the event \"%s\"", session.Name, events[i].Title),
			EventID: eventID,
		}))
		changes.Notifications = append(notifications, created...)
	}

	if err = m.storage.Save(ctx, changes); err != nil {
		return nil, err
	}
	m.deliver(ctx, created...)

	m.logger.Infof("Registration cancelled (event_id=%s, user_id=%s)", eventID, session.ID)
	cancelled := *registration
	return &cancelled, nil
}

// ConfirmAttendance marks a user as present and issues the certificate in the
// same write. Calling it again returns the existing certificate.
func (m *Manager) ConfirmAttendance(ctx context.Context, eventID, userID string) (*entity.Registration, *entity.Certificate, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, nil, err
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, nil, err
	}
	eventIdx := activeEventIndex(events, eventID)
	if eventIdx == -1 {
		return nil, nil, errorz.ErrNotFound
	}
	event := &events[eventIdx]
	if !session.CanManage(event.OrganizerID) {
		return nil, nil, errorz.ErrForbidden
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, nil, err
	}
	idx := latestRegistration(registrations, eventID, userID)
	if idx == -1 {
		return nil, nil, errorz.ErrNotFound
	}
	registration := &registrations[idx]
	if registration.Status == entity.StatusCancelled {
		return nil, nil, fmt.Errorf("%w: registration is cancelled", errorz.ErrPreconditionFailed)
	}

	certificates, err := m.storage.Certificates(ctx)
	if err != nil {
		return nil, nil, err
	}

	var changes dto.Changes
	if registration.Status != entity.StatusAttended {
		now := m.now()
		registration.Status = entity.StatusAttended
		registration.AttendedAt = &now
		changes.Registrations = registrations
	}

	certificate, created, err := m.issue(ctx, certificates, event, registration, &changes)
	if err != nil {
		return nil, nil, err
	}
	if !changes.Empty() {
		if err = m.storage.Save(ctx, changes); err != nil {
			return nil, nil, err
		}
	}
	if created != nil {
		m.deliver(ctx, *created)
	}

	m.logger.Infof("Attendance confirmed (event_id=%s, user_id=%s, certificate=%s)", eventID, userID, certificate.Code)
	attended := *registration
	return &attended, certificate, nil
}

// Registrations lists registrations. Filters compose with AND.
func (m *Manager) Registrations(ctx context.Context, filter dto.RegistrationFilter) ([]entity.Registration, error) {
	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Registration, 0, len(registrations))
	for _, r := range registrations {
		if filter.EventID != "" && r.EventID != filter.EventID {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// ParticipantCount returns the number of registrations holding a seat.
func (m *Manager) ParticipantCount(ctx context.Context, eventID string) (int, error) {
	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, r := range registrations {
		if r.EventID == eventID && r.Occupies() {
			count++
		}
	}
	return count, nil
}

// latestRegistration returns the index of the most recent non-cancelled
// registration of the pair, falling back to the most recent cancelled one.
// It returns -1 when the pair never registered.
func latestRegistration(registrations []entity.Registration, eventID, userID string) int {
	idx := -1
	for i := range registrations {
		r := &registrations[i]
		if r.EventID != eventID || r.UserID != userID {
			continue
		}
		if r.Occupies() || idx == -1 || !registrations[idx].Occupies() {
			idx = i
		}
	}
	return idx
}
