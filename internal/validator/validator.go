package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	seatNameRgx   = regexp.MustCompile(`^[A-Z][0-9]{1,3}$`)
)

const (
	ErrDefaultInvalid  = "is invalid"
	ErrRequired        = "is required"
	ErrInvalidEmail    = "must be a valid email address"
	ErrInvalidUUID     = "must be a valid UUID"
	ErrInvalidSeatName = "must be a row letter followed by a seat number, e.g. A1"
	ErrInvalidPassword = "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
		"one number, and one special character (!@#$%^&*)."
	ErrUniqueItems = "must not contain duplicates"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("seatname", validateSeatName)

	// Money travels as decimal.Decimal; numeric tags see it as a float.
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name[:1]) + fld.Name[1:]
		}
		return name
	})

	return validator
}

func decimalValue(v reflect.Value) any {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	f, _ := d.Float64()
	return f
}

func validateSeatName(fl validator.FieldLevel) bool {
	return seatNameRgx.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrInvalidEmail
	case "uuid":
		return ErrInvalidUUID
	case "min", "max":
		return sizeMessage(err)
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(err.Param()), ", "))
	case "datetime":
		return fmt.Sprintf("must match the format %s", err.Param())
	case "unique":
		return ErrUniqueItems
	case "url":
		return "must be a valid URL"
	case "seatname":
		return ErrInvalidSeatName
	case "password":
		return ErrInvalidPassword
	default:
		return ErrDefaultInvalid
	}
}

func sizeMessage(err validator.FieldError) string {
	bound := "at least"
	if err.Tag() == "max" {
		bound = "at most"
	}

	switch err.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("must contain %s %s items", bound, err.Param())
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", bound, err.Param())
	default:
		return fmt.Sprintf("must be %s %s", bound, err.Param())
	}
}
