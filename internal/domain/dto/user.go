package dto

import "github.com/academic-events/eventhub/internal/domain/entity"

type UserRegistration struct {
	Name        string      `validate:"required"`
	Email       string      `validate:"required,email"`
	Phone       string
	Password    string      `validate:"required"`
	Role        entity.Role `validate:"omitempty,role"`
	Institution string
}
