package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator.Validate caches struct metadata and is safe for concurrent use.
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// recordValidator returns the shared validator with the record tags registered.
func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("jobtitle", func(fl validator.FieldLevel) bool {
			return JobTitle(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("hiredate", func(fl validator.FieldLevel) bool {
			_, ok := HireDate(fl.Field().String()).Time()
			return ok
		})
		_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			s := Status(fl.Field().String())
			for _, known := range Statuses() {
				if s == known {
					return true
				}
			}
			return false
		})
		validate = v
	})
	return validate
}

// Normalize trims surrounding whitespace from the free-text fields.
func (r *Record) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.JobTitle = JobTitle(strings.TrimSpace(string(r.JobTitle)))
	r.HireDate = HireDate(strings.TrimSpace(string(r.HireDate)))
	r.Details = strings.TrimSpace(r.Details)
	r.Status = Status(strings.TrimSpace(string(r.Status)))
}

// Validate checks that the record can be sent to the employee service.
// A name, a known job title and a parsable hire date are required.
// The returned error wraps ErrInvalidRecord and lists every failing field.
func (r Record) Validate() error {
	err := recordValidator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "jobtitle":
		return fmt.Sprintf("%s %q is not a known job title", fe.Field(), fe.Value())
	case "hiredate":
		return fmt.Sprintf("%s %q is not a date (want %s)", fe.Field(), fe.Value(), HireDateLayout)
	case "status":
		return fmt.Sprintf("%s %q is not a known status", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
