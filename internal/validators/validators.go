package validators

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// Register installs the clinic tags on gin's request validator. Calling it
// more than once is harmless.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation("appointment_status", isStatus)
}

func isStatus(fl validator.FieldLevel) bool {
	_, ok := domain.ParseStatus(fl.Field().String())
	return ok
}

// Describe turns the first binding failure into a short message naming the
// offending field.
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "appointment_status":
		return fmt.Sprintf("%s is not a known appointment status", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
