// Package validation holds the struct validator shared by the persistence
// layer and gin's request binding, plus the rules the domain adds to it.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
)

// PasswordPolicyMessage describes the password rule to callers.
const PasswordPolicyMessage = "password must be at least 8 characters and include an uppercase letter, a lowercase letter, a number, and one of @$!%*?&"

const passwordSpecials = "@$!%*?&"

var (
	validate *validator.Validate
	once     sync.Once
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		configure(validate)
	})
	return validate
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(constants.ClockLayout, fl.Field().String())
		return err == nil
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// IsStrongPassword reports whether p satisfies the password policy.
func IsStrongPassword(p string) bool {
	if len(p) < constants.MinPasswordLength {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// Struct validates s and returns a Validation AppError whose user message
// joins every field failure with ", ".
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidationErrors(verrs)
	}
	return apierrors.Internal("validator failed", err)
}

// FromValidationErrors flattens field-level failures into one AppError.
func FromValidationErrors(verrs validator.ValidationErrors) *apierrors.AppError {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	joined := strings.Join(msgs, ", ")
	return apierrors.Validation("validation failed: "+verrs.Error(), joined)
}

// BindingError classifies an error returned by gin's ShouldBind* helpers.
func BindingError(err error) *apierrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidationErrors(verrs)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return apierrors.MalformedRequest("empty request body", "Request body is required").WithCause(err)
	case errors.As(err, &syntaxErr):
		return apierrors.MalformedRequest("invalid JSON", "Request body is not valid JSON").WithCause(err)
	case errors.As(err, &typeErr):
		return apierrors.MalformedRequest("JSON type mismatch",
			fmt.Sprintf("%s has the wrong type", typeErr.Field)).WithCause(err)
	default:
		return apierrors.MalformedRequest("failed to bind request", "Invalid request body").WithCause(err)
	}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid", "uuid4":
		return field + " must be a valid identifier"
	case "password":
		return PasswordPolicyMessage
	case "clock":
		return field + " must be a time in HH:MM format"
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not be after %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
