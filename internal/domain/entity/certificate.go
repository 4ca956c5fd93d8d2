package entity

import "time"

const CertificateAvailable = "available"

type Certificate struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserEmail  string    `json:"userEmail"`
	Code       string    `json:"code"`
	IssuedAt   time.Time `json:"issuedAt"`
	Status     string    `json:"status"`
}
