package errors

import "net/http"

// ErrInvalidID is returned for identifiers that cannot name any record; it is
// reported like a missing record.
var ErrInvalidID = &Exception{
	Message:    "record not found",
	StatusCode: http.StatusNotFound,
}
