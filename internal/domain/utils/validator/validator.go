package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get returns the shared validator with the domain tags registered.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		must(v.RegisterValidation("role", Role))
		must(v.RegisterValidation("eventtype", EventType))
		must(v.RegisterValidation("date", EventDate))
		must(v.RegisterValidation("clock", EventClock))
		instance = v
	})
	return instance
}

// Struct validates s and maps failures to errorz.ErrInvalidInput.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", errorz.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", errorz.ErrInvalidInput, strings.Join(fields, ", "))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
