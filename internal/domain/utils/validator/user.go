package validator

import (
	"strings"

	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/go-playground/validator/v10"
)

func Role(fl validator.FieldLevel) bool {
	return entity.Role(fl.Field().String()).Valid()
}

// NormalizeEmail is the single comparison form used for storing, registering and logging in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
