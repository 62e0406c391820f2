package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newStructValidator()

// Validator collects field errors for a request body.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Struct runs the `validate` tags of s and records one message per field.
func (v *Validator) Struct(s interface{}) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError("body", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), message(fe))
	}
}

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "amount", func(d decimal.Decimal) error { return ValidateAmount(d) })
	mustRegister(v, "balance", func(d decimal.Decimal) error { return ValidateBalance(d) })
	mustRegister(v, "coins", func(d decimal.Decimal) error { return ValidateCoins(d) })

	return v
}

func mustRegister(v *validator.Validate, tag string, check func(decimal.Decimal) error) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return check(d) == nil
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "amount":
		return "must be a positive amount with at most 2 decimal places"
	case "balance":
		return "must be a non-negative amount with at most 2 decimal places"
	case "coins":
		return fmt.Sprintf("must be a whole number between 1 and %d", MaxCoinsPerPurchase)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
