package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-backend/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names so messages match the request body
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// validateInput checks the validate tags of input and converts the first
// failure into a 400 ApiErr.
func validateInput(input any) error {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewMalformedPayloadError("request", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(fe.Field())
	case "gte":
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("must be at least %s", fe.Param()))
	case "lte":
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("must be at most %s", fe.Param()))
	case "max":
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
	default:
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}
