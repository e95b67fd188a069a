package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"realestate-crm.com/realestate-crm/internal/constants"
)

const (
	MsgRequired        = "This field is required."
	MsgWhitespaceName  = "Name cannot be empty or whitespace only."
	MsgWhitespaceTitle = "Title cannot be empty or whitespace only."
	MsgPricePositive   = "Price must be greater than 0."
	MsgFutureListing   = "Listing date cannot be in the future."
	MsgNegativeBeds    = "Bedrooms cannot be negative."
	MsgNegativeSqft    = "Square feet cannot be negative."
	MsgPastDueDate     = "Due date cannot be in the past for new tasks."
	MsgInvalidEmail    = "Enter a valid email address."
	MsgTaskBothTargets = "A task can be assigned to either a property or a client, not both."
	MsgBathroomSteps   = "Bathrooms must be a non-negative multiple of 0.5."
)

var (
	half         = decimal.RequireFromString("0.5")
	maxPriceInt  = decimal.New(1, constants.MaxPriceDigits-constants.PriceDecimals)
	maxBathrooms = decimal.New(1, constants.MaxBathroomDigits-constants.BathroomDecimals)
)

// RequiredName trims v and checks it is non-empty and within the name limit.
// The trimmed form is returned for storage.
func RequiredName(e *Errors, field, v string) string {
	return requiredText(e, field, v, constants.MaxNameLength, MsgWhitespaceName)
}

// RequiredTitle is RequiredName for task titles.
func RequiredTitle(e *Errors, field, v string) string {
	return requiredText(e, field, v, constants.MaxTitleLength, MsgWhitespaceTitle)
}

func requiredText(e *Errors, field, v string, max int, blankMsg string) string {
	trimmed := strings.TrimSpace(v)
	if v != "" && trimmed == "" {
		e.Add(field, blankMsg)
		return trimmed
	}
	check(e, field, trimmed, fmt.Sprintf("required,max=%d", max))
	return trimmed
}

// Required trims v and reports it when nothing is left.
func Required(e *Errors, field, v string) string {
	v = strings.TrimSpace(v)
	check(e, field, v, "required")
	return v
}

// Email checks v is a bare address. The trimmed value is returned.
func Email(e *Errors, field, v string) string {
	v = strings.TrimSpace(v)
	check(e, field, v, fmt.Sprintf("required,email,max=%d", constants.MaxEmailLength))
	return v
}

// PhoneDigits counts the digits of a phone number, ignoring formatting.
func PhoneDigits(v string) int {
	n := 0
	for _, r := range v {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func Phone(e *Errors, field, v string) string {
	v = strings.TrimSpace(v)
	check(e, field, v, fmt.Sprintf("required,phonedigits=%d,max=%d", constants.MinPhoneDigits, constants.MaxPhoneLength))
	return v
}

// Price requires a strictly positive amount fitting decimal(12,2).
func Price(e *Errors, field string, v decimal.Decimal) {
	if !v.IsPositive() {
		e.Add(field, MsgPricePositive)
		return
	}
	if !v.Round(constants.PriceDecimals).Equal(v) {
		e.Add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", constants.PriceDecimals))
	}
	if v.Truncate(0).GreaterThanOrEqual(maxPriceInt) {
		e.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.",
			constants.MaxPriceDigits-constants.PriceDecimals))
	}
}

func Bathrooms(e *Errors, field string, v decimal.NullDecimal) {
	if !v.Valid {
		return
	}
	if v.Decimal.IsNegative() || !v.Decimal.Mod(half).IsZero() || v.Decimal.GreaterThanOrEqual(maxBathrooms) {
		e.Add(field, MsgBathroomSteps)
	}
}

func NonNegative(e *Errors, field string, v *int, message string) {
	if v != nil && validate.Var(*v, "gte=0") != nil {
		e.Add(field, message)
	}
}

// NotAfter rejects dates later than today.
func NotAfter(e *Errors, field string, v, today time.Time, message string) {
	if check(e, field, v, "required") && v.After(today) {
		e.Add(field, message)
	}
}

// NotBefore rejects dates earlier than today.
func NotBefore(e *Errors, field string, v, today time.Time, message string) {
	if check(e, field, v, "required") && v.Before(today) {
		e.Add(field, message)
	}
}

// Choice checks v is one of choices. An empty v takes def, or is reported
// as missing when def is empty too.
func Choice[T ~string](e *Errors, field string, v, def T, choices []constants.Choice) T {
	if v == "" {
		v = def
	}
	check(e, field, string(v), "required,"+oneOf(choices))
	return v
}
