package dto

import "github.com/academic-events/eventhub/internal/domain/entity"

type NotificationInput struct {
	UserID  string
	Type    entity.NotificationType
	Title   string
	Message string
	EventID string
}
