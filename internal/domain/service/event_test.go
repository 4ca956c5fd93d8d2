package service

import (
	"testing"
	"time"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.CreateEvent(f.ctx, dto.EventInput{Title: "Go", Type: entity.Talk, Date: "2024-06-01"})
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	organizer := f.register(t, "Ana", "ana@uni.br", entity.Organizer)
	f.login(t, "ana@uni.br")

	event, err := f.manager.CreateEvent(f.ctx, dto.EventInput{Title: "Go", Type: entity.Talk, Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, organizer.ID, event.OrganizerID)
	assert.Equal(t, "Ana", event.OrganizerName)
	assert.True(t, event.IsActive)
	assert.Equal(t, DefaultImage, event.Image)
	assert.NotNil(t, event.Tags)
	assert.Empty(t, event.Tags)
	assert.NotNil(t, event.Speakers)
	assert.False(t, event.MaxParticipants.Limited())
	assert.Nil(t, event.UpdatedAt)

	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{Title: "Bad", Type: "party", Date: "2024-06-01"})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{Title: "Bad", Type: entity.Talk, Date: "01/06/2024"})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{Title: "Bad", Type: entity.Talk, Date: "2024-06-01", MaxParticipants: intPtr(0)})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}

func TestUpdateEvent(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "ana@uni.br", entity.Organizer)
	f.register(t, "Rui", "rui@uni.br", entity.Organizer)
	participant := f.register(t, "Bia", "bia@uni.br", entity.Participant)

	f.login(t, "ana@uni.br")
	event := f.createEvent(t, "Go Workshop", intPtr(20))

	f.login(t, "bia@uni.br")
	_, err := f.manager.RegisterForEvent(f.ctx, event.ID)
	require.NoError(t, err)

	title := "Other title"
	f.login(t, "rui@uni.br")
	_, err = f.manager.UpdateEvent(f.ctx, event.ID, dto.EventUpdate{Title: &title})
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = f.manager.UpdateEvent(f.ctx, "missing", dto.EventUpdate{Title: &title})
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	f.login(t, "ana@uni.br")
	f.advance(time.Hour)
	location := "Auditorium"
	tags := []string{"go"}
	updated, err := f.manager.UpdateEvent(f.ctx, event.ID, dto.EventUpdate{
		Location:        &location,
		Tags:            &tags,
		MaxParticipants: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Auditorium", updated.Location)
	assert.Equal(t, []string{"go"}, updated.Tags)
	assert.False(t, updated.MaxParticipants.Limited(), "zero removes the limit")
	assert.Equal(t, "Go Workshop", updated.Title)
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, event.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, f.now, *updated.UpdatedAt)

	notifications, err := f.manager.Notifications(f.ctx, participant.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationEventUpdated, notifications[0].Type)
	assert.True(t, notifications[0].IsAbout(event.ID))

	f.loginAdmin(t)
	title = "Renamed by admin"
	updated, err = f.manager.UpdateEvent(f.ctx, event.ID, dto.EventUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed by admin", updated.Title)

	empty := ""
	_, err = f.manager.UpdateEvent(f.ctx, event.ID, dto.EventUpdate{Title: &empty})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}

func TestDeleteEventKeepsReferences(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "ana@uni.br", entity.Organizer)
	participant := f.register(t, "Bia", "bia@uni.br", entity.Participant)

	f.login(t, "ana@uni.br")
	event := f.createEvent(t, "Go Workshop", nil)

	f.login(t, "bia@uni.br")
	_, err := f.manager.RegisterForEvent(f.ctx, event.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.manager.DeleteEvent(f.ctx, event.ID), errorz.ErrForbidden)

	f.login(t, "ana@uni.br")
	_, cert, err := f.manager.ConfirmAttendance(f.ctx, event.ID, participant.ID)
	require.NoError(t, err)
	require.NoError(t, f.manager.DeleteEvent(f.ctx, event.ID))
	assert.ErrorIs(t, f.manager.DeleteEvent(f.ctx, event.ID), errorz.ErrNotFound)

	events, err := f.manager.Events(f.ctx, dto.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = f.manager.EventByID(f.ctx, event.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	historical, err := f.manager.EventByIDWithInactive(f.ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, historical.IsActive)
	assert.Equal(t, "Go Workshop", historical.Title)

	registrations, err := f.manager.Registrations(f.ctx, dto.RegistrationFilter{UserID: participant.ID})
	require.NoError(t, err)
	require.Len(t, registrations, 1)
	assert.Equal(t, event.ID, registrations[0].EventID)

	certificates, err := f.manager.Certificates(f.ctx, dto.CertificateFilter{UserID: participant.ID})
	require.NoError(t, err)
	require.Len(t, certificates, 1)
	assert.Equal(t, cert.ID, certificates[0].ID)
	assert.Equal(t, event.ID, certificates[0].EventID)
}

func TestEventsFilters(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "Ana", "ana@uni.br", entity.Organizer)
	f.register(t, "Rui", "rui@uni.br", entity.Organizer)

	f.login(t, "ana@uni.br")
	_, err := f.manager.CreateEvent(f.ctx, dto.EventInput{
		Title: "Intro to Go", Type: entity.Workshop, Date: "2024-06-01", Tags: []string{"Backend"},
	})
	require.NoError(t, err)
	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{
		Title: "Keynote", Description: "Future of GO tooling", Type: entity.Talk, Date: "2024-06-02",
	})
	require.NoError(t, err)

	f.login(t, "rui@uni.br")
	_, err = f.manager.CreateEvent(f.ctx, dto.EventInput{
		Title: "Hackathon", Type: entity.Competition, Date: "2024-06-03", Tags: []string{"backend"},
	})
	require.NoError(t, err)

	titles := func(filter dto.EventFilter) []string {
		events, err := f.manager.Events(f.ctx, filter)
		require.NoError(t, err)
		var out []string
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Intro to Go", "Keynote", "Hackathon"}, titles(dto.EventFilter{}))
	assert.Equal(t, []string{"Keynote"}, titles(dto.EventFilter{Type: entity.Talk}))
	assert.Equal(t, []string{"Intro to Go", "Keynote"}, titles(dto.EventFilter{Search: "go"}))
	assert.Equal(t, []string{"Intro to Go", "Hackathon"}, titles(dto.EventFilter{Search: "BACKEND"}))
	assert.Equal(t, []string{"Intro to Go"}, titles(dto.EventFilter{Search: "backend", OrganizerID: ana.ID}))
	assert.Empty(t, titles(dto.EventFilter{Type: entity.Competition, OrganizerID: ana.ID}))
}
