package model

import "time"

// DateOf strips the clock from t, keeping its calendar day, as midnight UTC.
// Listing and due dates are always stored in this form so that they compare
// correctly regardless of the driver.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day as midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}
