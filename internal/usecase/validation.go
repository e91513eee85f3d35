package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct checks struct tags and reports violations as ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domainErrors.ErrValidation, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domainErrors.ErrValidation, strings.Join(problems, "; "))
}

// persistenceError passes domain errors through and marks anything else as a storage failure.
func persistenceError(err error) error {
	for _, known := range []error{
		domainErrors.ErrValidation,
		domainErrors.ErrNotFound,
		domainErrors.ErrInsufficientStock,
		domainErrors.ErrAlreadyCompleted,
		domainErrors.ErrOrderCancelled,
		domainErrors.ErrAlreadyExists,
		domainErrors.ErrPersistence,
		domainErrors.ErrForbidden,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domainErrors.ErrPersistence, err)
}
