package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type EventType string

const (
	Workshop    EventType = "workshop"
	Talk        EventType = "talk"
	Competition EventType = "competition"
)

func (t EventType) Valid() bool {
	switch t {
	case Workshop, Talk, Competition:
		return true
	}
	return false
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Capacity is the participant limit of an event. Zero means no limit and is
// stored as null.
type Capacity int

// CapacityOf converts an optional limit. nil and values below one mean no limit.
func CapacityOf(v *int) Capacity {
	if v == nil || *v < 1 {
		return 0
	}
	return Capacity(*v)
}

func (c Capacity) Limited() bool {
	return c > 0
}

func (c Capacity) MarshalJSON() ([]byte, error) {
	if !c.Limited() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalJSON accepts a number, a numeric string, an empty string or null.
// Older profiles store the raw form value as a string.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		*c = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid participant limit %q", raw)
	}
	if n < 0 {
		n = 0
	}
	*c = Capacity(n)
	return nil
}

type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            EventType  `json:"type"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Location        string     `json:"location"`
	Image           string     `json:"image"`
	Tags            []string   `json:"tags"`
	Speakers        []string   `json:"speakers"`
	MaxParticipants Capacity   `json:"maxParticipants"`
	OrganizerID     string     `json:"organizerId"`
	OrganizerName   string     `json:"organizerName"`
	CreatedAt       time.Time  `json:"createdAt"`
	IsActive        bool       `json:"isActive"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// StartsAt combines Date and Time in loc. A missing time means midnight.
// ok is false when the date cannot be parsed.
func (e *Event) StartsAt(loc *time.Location) (t time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	value, layout := strings.TrimSpace(e.Date), DateLayout
	if clock := strings.TrimSpace(e.Time); clock != "" {
		value, layout = value+" "+clock, DateLayout+" "+TimeLayout
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Matches reports whether search occurs in the title, the description or any tag,
// ignoring case.
func (e *Event) Matches(search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.Description), search) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}
