// Package validate runs client-side checks on user input before any
// network call, producing service.ValidationError on violations.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskflow/internal/service"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Task checks a create-task request: title required and ≤100 characters,
// description ≤500, date required in YYYY-MM-DD form.
func Task(nt service.NewTask) error {
	return check(v.Struct(nt))
}

// Login checks a credentials pair.
func Login(creds service.Credentials) error {
	return check(v.Struct(creds))
}

// Registration checks a new-account request, including the password
// confirmation the form collects separately.
func Registration(reg service.Registration, confirmPassword string) error {
	if err := check(v.Struct(reg)); err != nil {
		return err
	}
	if reg.Password != confirmPassword {
		return &service.ValidationError{Problems: []string{"passwords do not match"}}
	}
	return nil
}

// check converts validator output into a service.ValidationError with
// plain field messages.
func check(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, message(fe))
	}
	return &service.ValidationError{Problems: problems}
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
