package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportEventsToICS(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	events := []entity.Event{
		{ID: "e1", Title: "Go Workshop", Date: "2024-05-02", Time: "14:30", Location: "Room 101", Tags: []string{"go", "backend"}, CreatedAt: now},
		{ID: "e2", Title: "Broken", Date: "someday", CreatedAt: now},
	}

	data, err := ExportEventsToICS(events, time.UTC, now)
	require.NoError(t, err)
	ics := string(data)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "UID:e1@eventhub")
	assert.Contains(t, ics, "SUMMARY:Go Workshop")
	assert.Contains(t, ics, "20240502T143000Z")
	assert.Contains(t, ics, "20240502T153000Z")
	assert.Contains(t, ics, "-PT1H")
	assert.NotContains(t, ics, "Broken")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
}
