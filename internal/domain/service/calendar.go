package service

import (
	"context"

	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/internal/domain/utils/calendar"
)

// ExportCalendar returns an iCalendar document with the active events the
// session user holds a seat for.
func (m *Manager) ExportCalendar(ctx context.Context) ([]byte, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var selected []entity.Event
	for _, r := range registrations {
		if r.UserID != session.ID || !r.Occupies() || seen[r.EventID] {
			continue
		}
		if idx := activeEventIndex(events, r.EventID); idx != -1 {
			seen[r.EventID] = true
			selected = append(selected, events[idx])
		}
	}

	return calendar.ExportEventsToICS(selected, m.location(), m.now())
}
