package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
)

// ReminderWindow is how far ahead of an event its reminder is created.
const ReminderWindow = 24 * time.Hour

// Notify appends an unread notification.
func (m *Manager) Notify(ctx context.Context, in dto.NotificationInput) (*entity.Notification, error) {
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return nil, err
	}
	notice := m.notification(in)
	if err = m.storage.Save(ctx, dto.Changes{Notifications: append(notifications, notice)}); err != nil {
		return nil, err
	}
	m.deliver(ctx, notice)
	return &notice, nil
}

// Notifications returns the notifications of userID, or all of them when
// userID is empty, newest first.
func (m *Manager) Notifications(ctx context.Context, userID string) ([]entity.Notification, error) {
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Notification, 0, len(notifications))
	for i := len(notifications) - 1; i >= 0; i-- {
		if userID == "" || notifications[i].UserID == userID {
			result = append(result, notifications[i])
		}
	}
	// Reversed insertion order keeps the latest first among equal timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// MarkNotificationRead marks one notification as read. Unknown ids are ignored.
func (m *Manager) MarkNotificationRead(ctx context.Context, id string) error {
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID != id {
			continue
		}
		if notifications[i].Read {
			return nil
		}
		notifications[i].Read = true
		return m.storage.Save(ctx, dto.Changes{Notifications: notifications})
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification of userID as read
// and returns how many changed.
func (m *Manager) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range notifications {
		if notifications[i].UserID == userID && !notifications[i].Read {
			notifications[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err = m.storage.Save(ctx, dto.Changes{Notifications: notifications}); err != nil {
		return 0, err
	}
	return changed, nil
}

func (m *Manager) UnreadCount(ctx context.Context, userID string) (int, error) {
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// ReminderSweep creates one event_reminder per event for the session user's
// confirmed registrations whose active event starts within ReminderWindow of
// now. Without a session it does nothing. It returns the number of reminders
// created.
func (m *Manager) ReminderSweep(ctx context.Context, now time.Time) (int, error) {
	session, err := m.storage.Session(ctx)
	if err != nil {
		return 0, err
	}
	if session == nil {
		m.logger.Debugf("Reminder sweep skipped: no session")
		return 0, nil
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return 0, err
	}
	events, err := m.storage.Events(ctx)
	if err != nil {
		return 0, err
	}
	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return 0, err
	}

	reminded := make(map[string]bool)
	for _, n := range notifications {
		if n.UserID == session.ID && n.Type == entity.NotificationEventReminder && n.EventID != nil {
			reminded[*n.EventID] = true
		}
	}

	loc := m.location()
	var created []entity.Notification
	for _, r := range registrations {
		if r.UserID != session.ID || !r.Confirmed() || reminded[r.EventID] {
			continue
		}
		idx := activeEventIndex(events, r.EventID)
		if idx == -1 {
			continue
		}
		event := events[idx]
		start, ok := event.StartsAt(loc)
		if !ok {
			m.logger.Debugf("Reminder sweep: unparsable start (event_id=%s)", event.ID)
			continue
		}
		until := start.Sub(now)
		if until <= 0 || until > ReminderWindow {
			continue
		}

		reminded[event.ID] = true
		created = append(created, m.notification(dto.NotificationInput{
			UserID:  session.ID,
			Type:    entity.NotificationEventReminder,
			Title:   "Event reminder",
			Message: fmt.Sprintf("The event \"%s\" starts in %d hours!", event.Title, int(until.Hours())),
			EventID: event.ID,
		}))
	}

	if len(created) == 0 {
		return 0, nil
	}
	if err = m.storage.Save(ctx, dto.Changes{Notifications: append(notifications, created...)}); err != nil {
		return 0, err
	}
	m.deliver(ctx, created...)

	m.logger.Infof("Reminders created (user_id=%s, count=%d)", session.ID, len(created))
	return len(created), nil
}
