package dto

import "github.com/academic-events/eventhub/internal/domain/entity"

type EventInput struct {
	Title           string           `validate:"required"`
	Description     string
	Type            entity.EventType `validate:"required,eventtype"`
	Date            string           `validate:"required,date"`
	Time            string           `validate:"omitempty,clock"`
	Location        string
	Image           string
	Tags            []string
	Speakers        []string
	MaxParticipants *int `validate:"omitempty,gt=0"`
}

// EventUpdate lists the mutable fields of an event. Nil fields are left unchanged.
// MaxParticipants set to 0 removes the limit.
type EventUpdate struct {
	Title           *string           `validate:"omitempty,min=1"`
	Description     *string
	Type            *entity.EventType `validate:"omitempty,eventtype"`
	Date            *string           `validate:"omitempty,date"`
	Time            *string           `validate:"omitempty,clock"`
	Location        *string
	Image           *string
	Tags            *[]string
	Speakers        *[]string
	MaxParticipants *int `validate:"omitempty,gte=0"`
}

type EventFilter struct {
	Type        entity.EventType
	Search      string
	OrganizerID string
}
