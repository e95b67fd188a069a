package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"realestate-crm.com/realestate-crm/internal/constants"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return PhoneDigits(fl.Field().String()) >= want
	}); err != nil {
		panic(err)
	}
	return v
}

// check runs tag against value and records the first failing rule on field.
func check(e *Errors, field string, value interface{}, tag string) bool {
	err := validate.Var(value, tag)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		e.Add(field, err.Error())
		return false
	}
	for _, fe := range fieldErrs {
		e.Add(field, message(fe))
	}
	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "phonedigits":
		return fmt.Sprintf("Phone number must have at least %s digits.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	}
	return fe.Error()
}

func oneOf(choices []constants.Choice) string {
	values := make([]string, len(choices))
	for i, c := range choices {
		values[i] = c.Value
	}
	return "oneof=" + strings.Join(values, " ")
}
