package validators

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"realestate-crm.com/realestate-crm/internal/constants"
	dto "realestate-crm.com/realestate-crm/internal/data_models"
	"realestate-crm.com/realestate-crm/internal/validation"
)

const (
	msgNumber      = "Enter a number."
	msgWholeNumber = "Enter a whole number."
	msgDate        = "Enter a valid date."
)

func parseDecimal(e *validation.Errors, field string, v dto.Value) decimal.NullDecimal {
	if v.Blank() {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v.Trim().String())
	if err != nil {
		e.Add(field, msgNumber)
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseInt(e *validation.Errors, field string, v dto.Value) *int {
	if v.Blank() {
		return nil
	}
	i, err := strconv.Atoi(v.Trim().String())
	if err != nil {
		e.Add(field, msgWholeNumber)
		return nil
	}
	return &i
}

// parseDate accepts ISO calendar dates and, for JSON clients, RFC 3339 timestamps.
func parseDate(e *validation.Errors, field string, v dto.Value) time.Time {
	if v.Blank() {
		return time.Time{}
	}
	s := v.Trim().String()
	for _, layout := range []string{constants.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	e.Add(field, msgDate)
	return time.Time{}
}

func parseID(e *validation.Errors, field string, v dto.Value) *uint {
	if v.Blank() {
		return nil
	}
	s := v.Trim().String()
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		e.Add(field, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", s))
		return nil
	}
	u := uint(id)
	return &u
}

func parseIDs(e *validation.Errors, field string, vs []dto.Value) []uint {
	if vs == nil {
		return nil
	}
	ids := make([]uint, 0, len(vs))
	for _, v := range vs {
		if id := parseID(e, field, v); id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}
