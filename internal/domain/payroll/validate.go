package payroll

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hrpay/internal/domain/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateProfile rejects out-of-range profiles before any computation.
func ValidateProfile(p Profile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return apperr.Invalid(first.Field(), first.Value(), describeTag(first))
	}
	return apperr.Invalid("profile", nil, err.Error())
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "ltfield":
		return "must be less than " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func ValidatePeriod(year int, month time.Month) error {
	if year < 2000 || year > 2100 {
		return apperr.Invalid("year", year, "out of range")
	}
	if month < time.January || month > time.December {
		return apperr.Invalid("month", int(month), "must be 1-12")
	}
	return nil
}
