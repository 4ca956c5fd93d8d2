package dto

import "github.com/academic-events/eventhub/internal/domain/entity"

type RegistrationFilter struct {
	EventID string
	UserID  string
	Status  entity.RegistrationStatus
}

type CertificateFilter struct {
	UserEmail string
	UserID    string
	EventID   string
}
