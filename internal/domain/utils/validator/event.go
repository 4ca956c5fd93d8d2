package validator

import (
	"time"

	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/go-playground/validator/v10"
)

func EventType(fl validator.FieldLevel) bool {
	return entity.EventType(fl.Field().String()).Valid()
}

func EventDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(entity.DateLayout, fl.Field().String())
	return err == nil
}

func EventClock(fl validator.FieldLevel) bool {
	_, err := time.Parse(entity.TimeLayout, fl.Field().String())
	return err == nil
}
