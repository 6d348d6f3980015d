package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hayasaka-dev/resale-ledger/internal/app/inventory/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates an inbound payload and folds every failing field
// into one domain.ValidationError, matching the store's own error shape so
// clients see a single format regardless of which layer rejected the input.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	violations := make([]domain.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domain.FieldViolation{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return &domain.ValidationError{Violations: violations}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return "must be YYYY-MM-DD"
	}
	return "is invalid"
}
