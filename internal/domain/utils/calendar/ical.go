package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/academic-events/eventhub/internal/domain/entity"
	ics "github.com/arran4/golang-ical"
)

// DefaultDuration is used as the length of every exported event, since events carry no end time.
const DefaultDuration = time.Hour

// ExportEventsToICS serializes events into an iCalendar document. Events whose
// date cannot be parsed are skipped. Each exported event gets a reminder one day
// and one hour before it starts.
func ExportEventsToICS(events []entity.Event, loc *time.Location, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Academic Events//EventHub//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, event := range events {
		start, ok := event.StartsAt(loc)
		if !ok {
			continue
		}

		e := cal.AddEvent(fmt.Sprintf("%s@eventhub", event.ID))
		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		if event.UpdatedAt != nil {
			e.SetModifiedAt(*event.UpdatedAt)
		} else {
			e.SetModifiedAt(event.CreatedAt)
		}
		e.SetStartAt(start)
		e.SetEndAt(start.Add(DefaultDuration))

		e.SetSummary(event.Title)
		e.SetDescription(event.Description)
		e.SetLocation(event.Location)
		if len(event.Tags) > 0 {
			e.AddProperty(ics.ComponentPropertyCategories, strings.Join(event.Tags, ","))
		}
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Reminder: %s (tomorrow)", event.Title))

		hourAlarm := e.AddAlarm()
		hourAlarm.SetAction(ics.ActionDisplay)
		hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		hourAlarm.SetDescription(fmt.Sprintf("Reminder: %s (in one hour)", event.Title))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}

	return buf.Bytes(), nil
}
