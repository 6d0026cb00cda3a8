package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/ledger"
	"github.com/and161185/budget-keeper/internal/model"
)

// validate checks the `validate` tags of the model payloads.
// Custom rules: amount (decimal > 0), password (ASCII uppercase letter and digit),
// notblank (not only whitespace).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(decimal.Decimal).String()
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(model.Date).String()
	}, model.Date{})

	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && ledger.ValidateAmount(d) == nil
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.ContainsFunc(s, isASCIIUpper) && strings.ContainsFunc(s, isASCIIDigit)
	})
	mustRegister(v, "notblank", validators.NotBlank)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func isASCIIUpper(r rune) bool { return 'A' <= r && r <= 'Z' }
func isASCIIDigit(r rune) bool { return '0' <= r && r <= '9' }

// check validates form and reports its first failing field as a validation error.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("validate %T: %w", form, err)
	}
	fe := fields[0]
	if fe.Tag() == "amount" {
		return errs.ErrInvalidAmount
	}
	return errs.Validationf("%s", message(fe))
}

func message(fe validator.FieldError) string {
	name := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required", "notblank", "gt":
		return name + " is required"
	case "email":
		return fmt.Sprintf("invalid email %q", fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("unknown %s %q (want one of: %s)", name, fmt.Sprint(fe.Value()), fe.Param())
	case "password":
		return "password must contain an uppercase letter and a digit"
	case "eqfield":
		return "passwords do not match"
	}
	return fmt.Sprintf("%s fails %s", name, fe.Tag())
}
