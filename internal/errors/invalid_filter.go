package errors

import "net/http"

var ErrInvalidFilter = &Exception{
	Message:    "invalid filter parameter",
	StatusCode: http.StatusBadRequest,
}
