package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/internal/domain/utils/validator"
)

// CreateEvent creates an active event owned by the session user.
func (m *Manager) CreateEvent(ctx context.Context, in dto.EventInput) (*entity.Event, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err = validator.Struct(in); err != nil {
		return nil, err
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}

	event := entity.Event{
		ID:              m.newID(),
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Type:            in.Type,
		Date:            in.Date,
		Time:            in.Time,
		Location:        in.Location,
		Image:           in.Image,
		Tags:            copyStrings(in.Tags),
		Speakers:        copyStrings(in.Speakers),
		MaxParticipants: entity.CapacityOf(in.MaxParticipants),
		OrganizerID:     session.ID,
		OrganizerName:   session.Name,
		CreatedAt:       m.now(),
		IsActive:        true,
	}
	if event.Image == "" {
		event.Image = m.cfg.DefaultImage
	}

	events = append(events, event)
	if err = m.storage.Save(ctx, dto.Changes{Events: events}); err != nil {
		return nil, err
	}
	m.logger.Infof("Event created (event_id=%s, organizer_id=%s)", event.ID, event.OrganizerID)
	return &event, nil
}

// UpdateEvent merges the set fields of upd into an active event and notifies
// every registrant that has not cancelled.
func (m *Manager) UpdateEvent(ctx context.Context, id string, upd dto.EventUpdate) (*entity.Event, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err = validator.Struct(upd); err != nil {
		return nil, err
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}
	idx := activeEventIndex(events, id)
	if idx == -1 {
		return nil, errorz.ErrNotFound
	}
	event := &events[idx]
	if !session.CanManage(event.OrganizerID) {
		return nil, errorz.ErrForbidden
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	applyEventUpdate(event, upd)
	now := m.now()
	event.UpdatedAt = &now

	var created []entity.Notification
	notified := make(map[string]bool)
	for _, r := range registrations {
		if r.EventID != id || !r.Occupies() || notified[r.UserID] {
			continue
		}
		notified[r.UserID] = true
		created = append(created, m.notification(dto.NotificationInput{
			UserID:  r.UserID,
			Type:    entity.NotificationEventUpdated,
			Title:   "Event updated",
			Message: fmt.Sprintf("The event \"%s\" was updated", event.Title),
			EventID: id,
		}))
	}

	changes := dto.Changes{Events: events}
	if len(created) > 0 {
		changes.Notifications = append(notifications, created...)
	}
	if err = m.storage.Save(ctx, changes); err != nil {
		return nil, err
	}
	m.deliver(ctx, created...)

	m.logger.Infof("Event updated (event_id=%s, by=%s, notified=%d)", id, session.ID, len(created))
	updated := *event
	return &updated, nil
}

// DeleteEvent deactivates an event. Its rows stay referenced by registrations
// and certificates.
func (m *Manager) DeleteEvent(ctx context.Context, id string) error {
	session, err := m.requireSession(ctx)
	if err != nil {
		return err
	}

	events, err := m.storage.Events(ctx)
	if err != nil {
		return err
	}
	idx := activeEventIndex(events, id)
	if idx == -1 {
		return errorz.ErrNotFound
	}
	if !session.CanManage(events[idx].OrganizerID) {
		return errorz.ErrForbidden
	}

	now := m.now()
	events[idx].IsActive = false
	events[idx].UpdatedAt = &now
	if err = m.storage.Save(ctx, dto.Changes{Events: events}); err != nil {
		return err
	}
	m.logger.Infof("Event deleted (event_id=%s, by=%s)", id, session.ID)
	return nil
}

// Events lists active events. Filters compose with AND.
func (m *Manager) Events(ctx context.Context, filter dto.EventFilter) ([]entity.Event, error) {
	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(filter.Search)
	result := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if !e.IsActive {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.OrganizerID != "" && e.OrganizerID != filter.OrganizerID {
			continue
		}
		if search != "" && !e.Matches(search) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// EventByID returns an active event.
func (m *Manager) EventByID(ctx context.Context, id string) (*entity.Event, error) {
	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}
	idx := activeEventIndex(events, id)
	if idx == -1 {
		return nil, errorz.ErrNotFound
	}
	return &events[idx], nil
}

// EventByIDWithInactive also resolves deleted events, for rendering the
// certificates and notifications that still reference them.
func (m *Manager) EventByIDWithInactive(ctx context.Context, id string) (*entity.Event, error) {
	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, errorz.ErrNotFound
}

func activeEventIndex(events []entity.Event, id string) int {
	for i := range events {
		if events[i].ID == id && events[i].IsActive {
			return i
		}
	}
	return -1
}

// applyEventUpdate copies the set fields only. Identity, ownership and
// timestamps are never taken from an update.
func applyEventUpdate(e *entity.Event, upd dto.EventUpdate) {
	if upd.Title != nil {
		e.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Type != nil {
		e.Type = *upd.Type
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Time != nil {
		e.Time = *upd.Time
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Image != nil {
		e.Image = *upd.Image
	}
	if upd.Tags != nil {
		e.Tags = copyStrings(*upd.Tags)
	}
	if upd.Speakers != nil {
		e.Speakers = copyStrings(*upd.Speakers)
	}
	if upd.MaxParticipants != nil {
		e.MaxParticipants = entity.CapacityOf(upd.MaxParticipants)
	}
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
