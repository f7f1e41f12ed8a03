package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/SscSPs/invoice_wizard/internal/utils"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON names and knows the
// wizard's custom tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("supported_currency", func(fl validator.FieldLevel) bool {
		return utils.IsSupportedCurrency(fl.Field().String())
	})
	_ = v.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return render.IsHexColor(fl.Field().String())
	})
	_ = v.RegisterValidation("template_id", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseTemplateID(fl.Field().String())
		return ok
	})
	return v
}

// toValidationErrors converts validator output to field errors addressed by JSON path.
func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fieldPath(fe.Namespace()), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the root struct name: "submissionForm.client.email" -> "client.email".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "hex_color":
		return "must be a #RRGGBB color"
	case "supported_currency":
		return "is not a supported currency"
	case "template_id":
		return "is not a known template"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
