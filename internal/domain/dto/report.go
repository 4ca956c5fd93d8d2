package dto

import (
	"time"

	"github.com/academic-events/eventhub/internal/domain/entity"
)

type ReportKind string

const (
	ReportEvents        ReportKind = "events"
	ReportRegistrations ReportKind = "registrations"
	ReportUsers         ReportKind = "users"
)

// ReportFilter narrows the records of a report. Event fields apply to the
// events report, registration fields to the registrations report.
type ReportFilter struct {
	Event        EventFilter
	Registration RegistrationFilter
}

type Report struct {
	Type        ReportKind `json:"type"`
	GeneratedAt time.Time  `json:"generatedAt"`
	GeneratedBy string     `json:"generatedBy"`
	Data        ReportData `json:"data"`
}

type ReportData struct {
	Total         int                   `json:"total"`
	ByType        map[string]int        `json:"byType,omitempty"`
	ByStatus      map[string]int        `json:"byStatus,omitempty"`
	ByRole        map[string]int        `json:"byRole,omitempty"`
	Events        []entity.Event        `json:"events,omitempty"`
	Registrations []entity.Registration `json:"registrations,omitempty"`
	Users         []entity.User         `json:"users,omitempty"`
}

// Groups returns whichever grouping the report kind carries.
func (r *Report) Groups() map[string]int {
	switch r.Type {
	case ReportEvents:
		return r.Data.ByType
	case ReportRegistrations:
		return r.Data.ByStatus
	case ReportUsers:
		return r.Data.ByRole
	}
	return nil
}
